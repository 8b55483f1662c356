package planner

import (
	"fmt"
	"strconv"

	"github.com/OratorMurambiwa/MedStroke/internal/models"
)

// System prompts pin the generator to plain-text clinical output. The seven
// fixed section headings keep the rendered plan stable regardless of input.
const (
	generateSystemPrompt = "You are a stroke neurologist. Use the user-provided patient context only to inform your reasoning. Never repeat the context verbatim. Output must contain only the seven clinical sections requested, each with actionable treatment steps. No patient demographics, no introductions, no markdown."

	refineSystemPrompt = "You are an expert neurologist. Refine treatment plans based on physician input while maintaining medical accuracy. Provide responses in plain text format without markdown."
)

// Missing numeric fields render as "N/A" so section numbering never shifts
// with incomplete vitals.
func naStr(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

func naInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func naFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func naPred(prediction string) string {
	if prediction == "" {
		return "N/A"
	}
	return prediction
}

func tpaEligiblePrompt(patient models.Patient, scan models.StrokeScan, eligibilityResult string) string {
	return fmt.Sprintf(`You are a stroke neurologist generating a treatment plan. The text below is context only. NEVER repeat it in your output.

--- PATIENT CONTEXT (DO NOT OUTPUT) ---
Age: %s
Gender: %s
Time since onset: %s
Blood Pressure: %s/%s mmHg
Glucose: %s mg/dL
INR: %s
Diagnosis: %s
tPA eligibility: %s
---------------------------------------

Return ONLY the treatment plan with clinical actions and follow-up steps. Do not restate patient demographics, history, or eligibility status. No introductions or summaries. Structure the plan with exactly these seven sections and nothing else (all caps headings, plain text underneath):

1. IMMEDIATE INTERVENTIONS (FIRST 24 HOURS)
2. TPA ADMINISTRATION PROTOCOL AND MONITORING
3. POST-TPA CARE AND MONITORING
4. SECONDARY PREVENTION MEASURES
5. REHABILITATION PLANNING
6. FOLLOW-UP SCHEDULE
7. POTENTIAL COMPLICATIONS TO WATCH FOR

Each section must contain actionable items (medications with dose ranges, monitoring frequency, thresholds, referrals, etc.). Avoid bullet symbols like "-" or "•"; instead use short sentences separated by line breaks. Plain text only (no markdown).`,
		naInt(patient.Age),
		naStr(patient.Gender),
		naStr(patient.TimeSinceOnset),
		naInt(patient.SystolicBP),
		naInt(patient.DiastolicBP),
		naFloat(patient.Glucose),
		naFloat(patient.INR),
		naPred(scan.Prediction),
		eligibilityResult,
	)
}

func notEligiblePrompt(patient models.Patient, scan models.StrokeScan, eligibilityResult string) string {
	return fmt.Sprintf(`You are a stroke neurologist providing a clinical treatment plan. Based on the following patient information, provide ONLY treatment recommendations. Do NOT repeat or summarize the patient information.

Patient Context (for reference only):
Age: %s years, Gender: %s
Time since onset: %s
Blood Pressure: %s/%s mmHg
Glucose: %s mg/dL, INR: %s
Diagnosis: %s
Not eligible for tPA: %s

This patient is NOT eligible for tPA therapy. Provide a focused alternative treatment plan covering these 7 areas. Be specific, actionable, and evidence-based. Structure the plan with exactly these seven sections and nothing else (all caps headings, plain text underneath):

1. IMMEDIATE INTERVENTIONS (FIRST 24 HOURS)
2. MEDICAL MANAGEMENT STRATEGIES
3. SECONDARY PREVENTION MEASURES
4. REHABILITATION PLANNING
5. FOLLOW-UP SCHEDULE
6. ALTERNATIVE INTERVENTIONS (IF APPLICABLE)
7. MONITORING PARAMETERS

IMPORTANT INSTRUCTIONS:
Provide ONLY treatment recommendations and clinical actions.
Do NOT repeat patient demographics or history.
Use clear section headings in ALL CAPS.
Be specific with dosages, frequencies, and timelines where applicable.
Write in plain text format - NO markdown symbols (#, *, **, etc.).
Use professional medical terminology.
Keep it concise but comprehensive.`,
		naInt(patient.Age),
		naStr(patient.Gender),
		naStr(patient.TimeSinceOnset),
		naInt(patient.SystolicBP),
		naInt(patient.DiastolicBP),
		naFloat(patient.Glucose),
		naFloat(patient.INR),
		naPred(scan.Prediction),
		eligibilityResult,
	)
}

func refinePrompt(existingPlan, physicianNotes string) string {
	return fmt.Sprintf(`Below is an existing treatment plan for a stroke patient:

%s

The physician has provided the following additional notes and modifications:

%s

Please refine and update the treatment plan incorporating the physician's notes while maintaining medical accuracy and evidence-based recommendations. Highlight any changes made and provide the updated comprehensive treatment plan.

IMPORTANT: Format your response in plain text only. Do NOT use markdown formatting symbols like #, *, **, or bullet points. Write in a professional medical format.`,
		existingPlan, physicianNotes)
}
