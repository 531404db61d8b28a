package openai

// classifierSystemPrompt asks for the exact seven analysis fields plus the
// derived NPS class. The response is still treated as untrusted; the
// classify package owns all defaulting and repair.
const classifierSystemPrompt = `You are a Product Feedback AI. Analyze this feedback and return JSON with:

{
  "sentiment_score": Integer (1-10). 10 is thrilled, 1 is angry.
  "nps_class": "Promoter" (9-10), "Passive" (7-8), "Detractor" (0-6).
  "urgency_level": "High" | "Neutral" | "Low"
  "user_type": "Enterprise" | "SMB" | "Individual" | "Unknown"
  "product_category": Infer from text (e.g., "Workers", "Pages", "R2", "D1", "Zero Trust", "Unknown")
  "feedback_type": "UX" | "Tech" | "Service" | "Feature Request"
  "summary": Max 20 words
  "recommended_action": Short actionable step
}

Return ONLY valid JSON, no additional text.`

// classifierUserPrefix frames the feedback text in the user turn.
const classifierUserPrefix = "Analyze this feedback: "
