package config

// LegalDomain is one of the fixed legal subject-matter categories
type LegalDomain struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

const (
	DomainCompliance = "compliance"
	DomainContracts  = "contracts"
	DomainIPTech     = "ip_tech"
	DomainGovernance = "governance"
	DomainLitigation = "litigation"
)

var legalDomains = []LegalDomain{
	{
		Key:         DomainCompliance,
		Name:        "Compliance & Regulatory",
		Description: "Identify any compliance issues, regulatory concerns, ethical considerations, or workplace safety matters mentioned in the meeting.",
	},
	{
		Key:         DomainContracts,
		Name:        "Contracts & Agreements",
		Description: "Extract information about contracts, renewals, legal documents, software licenses, or tech agreements discussed in the meeting.",
	},
	{
		Key:         DomainIPTech,
		Name:        "IP & Technology Law",
		Description: "Identify discussions about intellectual property, software licensing, data privacy, cybersecurity, or technology law matters.",
	},
	{
		Key:         DomainGovernance,
		Name:        "Corporate Governance",
		Description: "Extract information about board governance, shareholder matters, corporate structure, business strategy, or finance law topics.",
	},
	{
		Key:         DomainLitigation,
		Name:        "Litigation & Disputes",
		Description: "Identify any mentions of disputes, internal investigations, legal proceedings, or merger and acquisition activities.",
	},
}

// LegalDomains returns the domain table in its fixed order
func LegalDomains() []LegalDomain {
	out := make([]LegalDomain, len(legalDomains))
	copy(out, legalDomains)
	return out
}

// DomainKeys returns the domain keys in table order
func DomainKeys() []string {
	keys := make([]string, 0, len(legalDomains))
	for _, d := range legalDomains {
		keys = append(keys, d.Key)
	}
	return keys
}

// DomainByKey looks up a domain by key
func DomainByKey(key string) (LegalDomain, bool) {
	for _, d := range legalDomains {
		if d.Key == key {
			return d, true
		}
	}
	return LegalDomain{}, false
}

// DomainName returns the display name for key, or key itself when unknown
func DomainName(key string) string {
	if d, ok := DomainByKey(key); ok {
		return d.Name
	}
	return key
}
