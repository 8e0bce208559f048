package constants

import "slices"

type (
	Brand    string
	Client   string
	Category string
)

const (
	BrandKawasaki Brand = "Kawasaki"
	BrandAprilia  Brand = "Aprilia"
	BrandYamaha   Brand = "Yamaha"
	BrandHonda    Brand = "Honda"
	BrandSuzuki   Brand = "Suzuki"
	BrandDucati   Brand = "Ducati"
	BrandTriumph  Brand = "Triumph"
)

const (
	ClientMotoFibra Client = "MotoFibra"
	ClientS2Concept Client = "S2Concept"
)

// Category values are the stored keys; "skid-plates" is the quillas category.
const (
	CategoryFenders      Category = "fenders"
	CategorySkidPlates   Category = "skid-plates"
	CategoryTanks        Category = "tanks"
	CategoryScoops       Category = "scoops"
	CategoryFrontFairing Category = "front-fairing"
	CategorySideFairings Category = "side-fairings"
	CategoryTailSection  Category = "tail-section"
)

// Allowed sets, in display order.
var (
	Brands = []Brand{
		BrandKawasaki, BrandAprilia, BrandYamaha, BrandHonda,
		BrandSuzuki, BrandDucati, BrandTriumph,
	}
	Clients    = []Client{ClientMotoFibra, ClientS2Concept}
	Categories = []Category{
		CategoryFenders, CategorySkidPlates, CategoryTanks, CategoryScoops,
		CategoryFrontFairing, CategorySideFairings, CategoryTailSection,
	}
)

func IsBrand(v string) bool    { return slices.Contains(Brands, Brand(v)) }
func IsClient(v string) bool   { return slices.Contains(Clients, Client(v)) }
func IsCategory(v string) bool { return slices.Contains(Categories, Category(v)) }

// CategoryLabels are the names shown in the UI.
var CategoryLabels = map[Category]string{
	CategoryFenders:      "Fenders",
	CategorySkidPlates:   "Skid plates (quillas)",
	CategoryTanks:        "Tanks",
	CategoryScoops:       "Scoops",
	CategoryFrontFairing: "Front fairing",
	CategorySideFairings: "Side fairings",
	CategoryTailSection:  "Tail section",
}
