package domain

// Program is a funded initiative donations can be earmarked for.
type Program struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
	// Names holds display names keyed by base language, e.g. "id".
	Names map[string]string `yaml:"names,omitempty" json:"-"`
}

// DisplayName returns the program's name in locale, falling back to Name.
func (p Program) DisplayName(locale string) string {
	if n := p.Names[locale]; n != "" {
		return n
	}
	return p.Name
}

// DefaultPrograms is the catalog used when no programs file is configured.
var DefaultPrograms = []Program{
	{Slug: "education", Name: "Education", Names: map[string]string{"id": "Pendidikan"}},
	{Slug: "healthcare", Name: "Healthcare", Names: map[string]string{"id": "Kesehatan"}},
	{Slug: "clean-water", Name: "Clean Water", Names: map[string]string{"id": "Air Bersih"}},
	{Slug: "food-security", Name: "Food Security", Names: map[string]string{"id": "Ketahanan Pangan"}},
	{Slug: "emergency-relief", Name: "Emergency Relief", Names: map[string]string{"id": "Tanggap Darurat"}},
}

// ProgramSlugs returns the slugs of programs in catalog order.
func ProgramSlugs(programs []Program) []string {
	out := make([]string, 0, len(programs))
	for _, p := range programs {
		out = append(out, p.Slug)
	}
	return out
}
