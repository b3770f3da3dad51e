package models

// TokenMetadata is an ERC-721 metadata document.
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalURL string      `json:"external_url"`
	Attributes  []Attribute `json:"attributes"`
}

// Attribute is one trait entry in a metadata document.
type Attribute struct {
	DisplayType string `json:"display_type,omitempty"`
	TraitType   string `json:"trait_type"`
	Value       any    `json:"value"`
}

// RarityTier pairs a rarity name with its selection weight.
type RarityTier struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// CollectionConfig describes the trait tables and text templates for a
// collection. Loaded from YAML with built-in defaults for the Genesis
// collection.
type CollectionConfig struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	BaseURL     string       `yaml:"base_url"`
	ExternalURL string       `yaml:"external_url"`
	Generation  string       `yaml:"generation"`
	Backgrounds []string     `yaml:"backgrounds"`
	Symbols     []string     `yaml:"symbols"`
	Accents     []string     `yaml:"accents"`
	Rarities    []RarityTier `yaml:"rarities"`
}
