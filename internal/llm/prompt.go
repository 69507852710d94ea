package llm

import "strings"

// BuildExtractionPrompt composes the per-chunk instruction with the page
// text substituted. The shape of the expected records is pinned in the
// prompt; BuildMetricArraySchema mirrors it for local validation.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are an ESG data extraction assistant.\n")
	b.WriteString("Extract sustainability metrics from the text and return a valid JSON array.\n")
	b.WriteString("Each entry must include:\n")
	b.WriteString("  - metric_name\n")
	b.WriteString("  - value\n")
	b.WriteString("  - unit\n")
	b.WriteString("  - year\n")
	b.WriteString("  - category (Environmental, Social, Governance)\n")
	b.WriteString("Do NOT include any explanations, markdown, or code fences. Return strictly JSON.\n")
	b.WriteString("\nText:\n")
	b.WriteString(text)
	return b.String()
}

// BuildComparisonPrompt composes the semantic-grouping instruction for one
// ESG category. The tables themselves travel as a second payload part, a
// JSON array of per-document record arrays.
func BuildComparisonPrompt(category string) string {
	var b strings.Builder
	b.WriteString("You are an ESG data analyst. I will give you multiple sustainability metric tables (as JSON).\n\n")
	b.WriteString("Each dataset has the following columns:\n")
	b.WriteString("- \"metric_name\": the name of the metric (e.g., Scope 1 GHG emissions, renewable electricity use)\n")
	b.WriteString("- \"value\": the reported figure\n")
	b.WriteString("- \"unit\": the measurement unit (e.g., metric tons CO2e)\n")
	b.WriteString("- \"year\": the reporting year\n")
	b.WriteString("- \"category\": one of Environmental, Social, or Governance\n")
	b.WriteString("- \"source\": file and page origin\n\n")
	b.WriteString("Your task:\n")
	b.WriteString("1. Identify and group metrics that are semantically common across these datasets for the category: ")
	b.WriteString(category)
	b.WriteString(".\n")
	b.WriteString("   - \"Common\" means they refer to the same underlying sustainability indicator (e.g., GHG emissions, water use, energy consumption).\n")
	b.WriteString("   - Names do not have to match exactly; interpret semantically.\n")
	b.WriteString("2. For each group of common metrics, return a structured JSON object with:\n")
	b.WriteString("   - \"common_metric\": a concise name summarizing the shared topic (e.g. \"GHG Emissions (Scopes 1 & 2)\")\n")
	b.WriteString("   - \"dataset_1\": an array of matching metric objects from the first dataset\n")
	b.WriteString("   - \"dataset_2\": an array of matching metric objects from the second dataset\n")
	b.WriteString("   - etc. for all datasets.\n\n")
	b.WriteString("Return only a valid JSON array, no explanations or text.\n")
	return b.String()
}
