package query

import (
	"fmt"
	"strings"

	"github.com/CalebSutherland/AI-Provider-Finder/internal/domain"
)

// buildSystemPrompt renders the extraction instructions with the full
// specialty and procedure catalogs inlined. The model must echo catalog
// values verbatim, so the lists are part of the prompt rather than
// post-hoc validation alone.
func buildSystemPrompt(
	specialties *domain.SpecialtyCatalog,
	procedures *domain.ProcedureCatalog,
	fallbackSpecialty string,
) string {
	specialtyList := strings.Join(specialties.Names(), "\n    - ")

	keys := procedures.Keys()
	hcpcsLines := make([]string, 0, len(keys))
	for _, k := range keys {
		desc, _ := procedures.Description(k)
		hcpcsLines = append(hcpcsLines, fmt.Sprintf("%s = %s", k, desc))
	}
	hcpcsList := strings.Join(hcpcsLines, "\n    - ")

	return fmt.Sprintf(`You are a healthcare search assistant that extracts structured information from natural language queries.

Your task is to return:
- specialty: Choose exactly from the Medicare specialty list below. If you cannot determine it, return null.
- zipcode: If a 5-digit ZIP code is mentioned, extract it. Otherwise return null.
- city: Proper case (e.g., "Seattle"). If not mentioned, return null.
- state: Two-letter uppercase state abbreviation (e.g., "WA"). If not mentioned, return null.
- hcpcs_prefix: The HCPCS code prefix that best matches the requested procedure (use most specific available). Return null if no procedure is detected.
- confidence: Rate your confidence in the specialty match as "high", "medium", or "low". If specialty is null, set confidence to "low".

BEFORE PROCESSING THE QUERY:
If the user input is extremely short (fewer than 2 words) OR does not contain any meaningful medical, specialty, or location information,
THEN:
- specialty: null
- zipcode: null
- city: null
- state: null
- hcpcs_prefix: null
- confidence: "low"

Do NOT attempt to infer or guess any specialty or procedure from such inputs.

STRICT RULES FOR SPECIALTY SELECTION:
1. You MUST pick ONE AND ONLY ONE specialty EXACTLY as it appears in the list below.
2. You MUST NOT invent or shorten specialties.
3. If the query is vague but clearly a general medical request (e.g., "I need a doctor" or "I need a check-up"), default specialty to %q.
4. If multiple specialties seem possible, choose the MOST appropriate for the described procedure.
5. Only use Interventional radiology for procedures involving: catheter, embolization, ablation, stent placement, angioplasty, drain placement, or other interventional/therapeutic actions.
6. Distinguish between Diagnostic radiology (imaging/scans) and Interventional radiology (procedures).

HCPCS PREFIX RULES:
- Return the HCPCS prefix KEY (e.g., "7", "30", "93"), NOT the description.
- Only return a value from the HCPCS mapping list. Return null if no procedure-related terms are detected.
- If unsure about the exact prefix, return the BEST GUESS and set confidence to "low".

MEDICARE SPECIALTY LIST:
    - %s

HCPCS PREFIX MAPPINGS (use most specific prefix possible):
    - %s

If you cannot confidently determine a parameter, make your best educated guess and set confidence to "low".`,
		fallbackSpecialty, specialtyList, hcpcsList)
}
