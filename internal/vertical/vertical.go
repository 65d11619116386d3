package vertical

// Vertical identifies one classifieds domain with its own record schema
// and normalization rules.
type Vertical string

const (
	Immobilier     Vertical = "immobilier"
	Emploi         Vertical = "emploi"
	Vehicules      Vertical = "vehicules"
	Electromenager Vertical = "electromenager"
	Telephonie     Vertical = "telephonie"
)

// All lists every supported vertical.
func All() []Vertical {
	return []Vertical{Immobilier, Emploi, Vehicules, Electromenager, Telephonie}
}

// IndexName returns the document index a vertical's records are pushed to.
func (v Vertical) IndexName() string {
	return "idx:" + string(v)
}

// DedupField tells the deduper which identity field keys a vertical.
// Job offers are frequently reposted under fresh URLs with the same
// title, so emploi dedups on title; everything else dedups on URL.
func (v Vertical) DedupField() string {
	if v == Emploi {
		return "title"
	}
	return "url"
}

// attributeSchemas holds, per vertical, the ordered attribute keys that
// must always be present in a canonical record. Missing values are
// emitted as empty strings, never omitted.
var attributeSchemas = map[Vertical][]string{
	Immobilier: {
		"type_bien",
		"pieces",
		"surface",
		"etage",
		"papiers",
		"promesse_vente",
	},
	Emploi: {
		"diplome",
		"experience",
		"contrat",
		"secteur",
		"entreprise",
	},
	Vehicules: {
		"marque",
		"modele",
		"annee",
		"carburant",
		"boite",
		"kilometrage",
		"couleur",
	},
	Electromenager: {
		"type_appareil",
		"marque",
		"classe_energie",
		"capacite",
		"dimensions",
		"etat",
	},
	Telephonie: {
		"marque",
		"modele",
		"ram",
		"stockage",
		"camera",
		"ecran",
		"etat",
	},
}

// AttributeSchema returns the canonical attribute keys for a vertical.
func (v Vertical) AttributeSchema() []string {
	return attributeSchemas[v]
}

// Valid reports whether v is a known vertical.
func (v Vertical) Valid() bool {
	_, ok := attributeSchemas[v]
	return ok
}
