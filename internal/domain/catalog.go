package domain

import "sort"

// SpecialtyCatalog is the whitelist of Medicare provider specialties.
// Immutable after construction; extractors receive it at wiring time.
type SpecialtyCatalog struct {
	members map[string]struct{}
	sorted  []string
}

// NewSpecialtyCatalog builds a catalog from the given specialty names.
func NewSpecialtyCatalog(names []string) *SpecialtyCatalog {
	members := make(map[string]struct{}, len(names))
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := members[n]; ok {
			continue
		}
		members[n] = struct{}{}
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return &SpecialtyCatalog{members: members, sorted: sorted}
}

// Contains reports whether name is a case-exact catalog member.
func (c *SpecialtyCatalog) Contains(name string) bool {
	_, ok := c.members[name]
	return ok
}

// Names returns the catalog members in sorted order. The slice is a
// copy; callers may not mutate catalog state.
func (c *SpecialtyCatalog) Names() []string {
	out := make([]string, len(c.sorted))
	copy(out, c.sorted)
	return out
}

// Len returns the number of specialties.
func (c *SpecialtyCatalog) Len() int { return len(c.members) }

// ProcedureCatalog maps HCPCS code prefixes (1-2 leading digits) to
// human-readable procedure category descriptions.
type ProcedureCatalog struct {
	entries map[string]string
	keys    []string
}

// NewProcedureCatalog builds a catalog from prefix->description pairs.
func NewProcedureCatalog(entries map[string]string) *ProcedureCatalog {
	m := make(map[string]string, len(entries))
	keys := make([]string, 0, len(entries))
	for k, v := range entries {
		m[k] = v
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &ProcedureCatalog{entries: m, keys: keys}
}

// Description returns the description for a prefix key.
func (c *ProcedureCatalog) Description(prefix string) (string, bool) {
	d, ok := c.entries[prefix]
	return d, ok
}

// Contains reports whether prefix is a catalog key.
func (c *ProcedureCatalog) Contains(prefix string) bool {
	_, ok := c.entries[prefix]
	return ok
}

// Keys returns the prefix keys in sorted order.
func (c *ProcedureCatalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of prefix entries.
func (c *ProcedureCatalog) Len() int { return len(c.entries) }

// DefaultSpecialtyCatalog returns the CMS Medicare specialty taxonomy
// used by the provider directory.
func DefaultSpecialtyCatalog() *SpecialtyCatalog {
	return NewSpecialtyCatalog(medicareSpecialties)
}

// DefaultProcedureCatalog returns the HCPCS prefix buckets used for
// coarse procedure filtering.
func DefaultProcedureCatalog() *ProcedureCatalog {
	return NewProcedureCatalog(hcpcsMappings)
}

var medicareSpecialties = []string{
	"General practice",
	"General surgery",
	"Allergy / immunology",
	"Otolaryngology",
	"Anesthesiology",
	"Cardiology",
	"Dermatology",
	"Family practice",
	"Interventional pain management",
	"Gastroenterology",
	"Internal medicine",
	"Osteopathic manipulative medicine",
	"Neurology",
	"Neurosurgery",
	"Obstetrics / gynecology",
	"Hospice and palliative care",
	"Ophthalmology",
	"Oral surgery (dentists only)",
	"Orthopedic surgery",
	"Cardiac electrophysiology",
	"Pathology",
	"Sports medicine",
	"Plastic and reconstructive surgery",
	"Physical medicine and rehabilitation",
	"Psychiatry",
	"Geriatric psychiatry",
	"Colorectal surgery (formerly proctology)",
	"Pulmonary disease",
	"Diagnostic radiology",
	"Thoracic surgery",
	"Urology",
	"Chiropractic",
	"Nuclear medicine",
	"Pediatric medicine",
	"Geriatric medicine",
	"Nephrology",
	"Hand surgery",
	"Optometry",
	"Infectious disease",
	"Endocrinology",
	"Podiatry",
	"Nurse practitioner",
	"Psychologist (billing independently)",
	"Audiologist (billing independently)",
	"Physical therapist in private practice",
	"Rheumatology",
	"Occupational therapist in private practice",
	"Clinical psychologist",
	"Pain management",
	"Peripheral vascular disease",
	"Vascular surgery",
	"Cardiac surgery",
	"Addiction medicine",
	"Clinical social worker",
	"Critical care (Intensivists)",
	"Hematology",
	"Hematology / oncology",
	"Preventive medicine",
	"Maxillofacial surgery",
	"Neuropsychiatry",
	"Certified clinical nurse specialist",
	"Medical oncology",
	"Surgical oncology",
	"Radiation oncology",
	"Emergency medicine",
	"Interventional radiology",
	"Physician assistant",
	"Gynecological / oncology",
	"Sleep medicine",
	"Interventional cardiology",
	"Dentist",
	"Hospitalist",
	"Advanced heart failure and transplant cardiology",
	"Medical toxicology",
	"Hematopoietic cell transplantation and cellular therapy",
	"Medical genetics and genomics",
	"Undersea and Hyperbaric Medicine",
	"Micrographic Dermatologic Surgery (MDS)",
	"Adult Congenital Heart Disease (ACHD)",
	"Single or multispecialty clinic or group practice (PA Group)",
}

var hcpcsMappings = map[string]string{
	"0":  "Anesthesia (00100-01999)",
	"1":  "Integumentary System (10030-19499)",
	"2":  "Musculoskeletal System (20100-29999)",
	"30": "Respiratory - Nose/Sinuses (30000-30999)",
	"31": "Respiratory - Larynx/Trachea (31000-31899)",
	"32": "Respiratory - Lungs/Pleura (32035-32999)",
	"33": "Cardiovascular - Heart/Pericardium (33016-33999)",
	"34": "Cardiovascular - Arteries/Veins (34001-34834)",
	"35": "Cardiovascular - Vascular Repair (35001-35907)",
	"36": "Cardiovascular - Vascular Access (36000-36598)",
	"37": "Cardiovascular - Vascular Other (37140-37799)",
	"38": "Hemic/Lymphatic Systems (38100-38999)",
	"39": "Mediastinum/Diaphragm (39000-39599)",
	"4":  "Digestive System (40490-49999)",
	"50": "Urinary - Kidney (50010-50593)",
	"51": "Urinary - Bladder (51020-51999)",
	"52": "Urinary - Urethra (52000-52700)",
	"53": "Urinary - Other (53000-53899)",
	"54": "Male Genital - Penis (54000-54450)",
	"55": "Male Genital - Other (55040-55899)",
	"56": "Female Genital - Vulva/Perineum (56405-56821)",
	"57": "Female Genital - Vagina (57000-57426)",
	"58": "Female Genital - Uterus (58100-58999)",
	"59": "Maternity Care/Delivery (59000-59899)",
	"6":  "Endocrine System (60000-60699)",
	"61": "Nervous - Skull/Brain (61000-61888)",
	"62": "Nervous - Spine/Spinal Cord (62263-62368)",
	"63": "Nervous - Extracranial (63001-63746)",
	"64": "Nervous - Peripheral (64400-64999)",
	"65": "Eye - Anterior Segment (65091-66990)",
	"66": "Eye - Posterior Segment (67005-67299)",
	"67": "Eye - Ocular Adnexa (67311-67999)",
	"68": "Eye - Other (68020-68899)",
	"69": "Auditory System (69000-69979)",
	"7":  "Diagnostic Radiology/Imaging (70010-76499)",
	"76": "Diagnostic Ultrasound (76506-76999)",
	"78": "Nuclear Medicine - Diagnostic (78012-78999)",
	"79": "Nuclear Medicine - Therapeutic (79005-79999)",
	"8":  "Pathology/Laboratory (80047-89398)",
	"82": "Chemistry Procedures (82009-82271)",
	"83": "Chemistry - Hormones/Drugs (83001-83992)",
	"84": "Chemistry - Other (84022-84999)",
	"85": "Hematology/Coagulation (85002-85999)",
	"86": "Immunology (86000-86849)",
	"87": "Microbiology (87003-87999)",
	"9":  "Medicine/E&M (90281-99607, 98000-99499)",
	"93": "Cardiovascular Procedures (92920-93799)",
	"94": "Pulmonary Procedures (94002-94799)",
	"97": "Physical Medicine/Rehab (97010-97799)",
}
