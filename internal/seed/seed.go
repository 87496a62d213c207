package seed

import (
	"fmt"
	"math/rand"
	"time"
)

// Dataset sizes matching the demo dataset the dashboard was built
// against.
const (
	HouseholdCount   = 100
	ProductCount     = 50
	TransactionCount = 2000
)

var (
	ageGroups = []string{"19-24", "25-34", "35-44", "45-54", "55-64", "65+"}

	incomeGroups = []string{
		"Under 15K", "15-24K", "25-34K", "35-49K", "50-74K",
		"75-99K", "100-124K", "150-174K", "250K+",
	}
	incomeWeights = []float64{0.1, 0.1, 0.1, 0.2, 0.2, 0.1, 0.1, 0.05, 0.05}

	householdComps = []string{
		"1 Adult Kids", "2 Adults Kids", "2 Adults No Kids",
		"Single Female", "Single Male",
	}
	householdSizes = []string{"1", "2", "3", "4", "5+"}
	kidCategories  = []string{"None/Unknown", "1", "2", "3+"}
	maritalCodes   = []string{"A", "B", "U"}
	homeownerDescs = []string{"Homeowner", "Renter", "Unknown"}

	departments       = []string{"GROCERY", "DRUG GM", "PRODUCE", "MEAT-PCKGD", "PASTRY", "SEAFOOD-PCKGD"}
	commoditiesByDept = map[string][]string{
		"GROCERY":       {"SOFT DRINKS", "CHEESE", "COOKIES/CONES", "BAKED BREAD/BUNS/ROLLS"},
		"DRUG GM":       {"VITAMINS", "CIGARETTES", "DIAPERS & DISPOSABLES"},
		"PRODUCE":       {"POTATOES", "SALAD MIX", "FRUIT - SHELF STABLE"},
		"MEAT-PCKGD":    {"DINNER SAUSAGE", "LUNCHMEAT"},
		"PASTRY":        {"BREAD", "CAKES"},
		"SEAFOOD-PCKGD": {"SEAFOOD - FROZEN"},
	}

	storeIDs = []int{300, 400, 500}
)

type Household struct {
	Key           int
	AgeBracket    string
	MaritalCode   string
	IncomeBracket string
	Homeowner     string
	Composition   string
	Size          string
	KidCategory   string
}

type Product struct {
	ID           int
	Manufacturer int
	Department   string
	Brand        string
	Commodity    string
	SubCommodity string
	Size         string
}

type Transaction struct {
	HouseholdKey int
	BasketID     int64
	Day          time.Time
	ProductID    int
	Quantity     int
	SalesValue   float64
	StoreID      int
	RetailDisc   float64
	TransTime    int
	WeekNo       int
}

type Dataset struct {
	Households   []Household
	Products     []Product
	Transactions []Transaction
}

// Generate builds the synthetic demo dataset. The same seed always
// produces the same dataset. Sales carry three deliberate patterns for
// the dashboard to surface: higher-income households buy pricier items,
// households with kids buy larger quantities, and weekends are denser.
func Generate(seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))
	ds := Dataset{
		Households:   make([]Household, 0, HouseholdCount),
		Products:     make([]Product, 0, ProductCount),
		Transactions: make([]Transaction, 0, TransactionCount),
	}

	for key := 1; key <= HouseholdCount; key++ {
		ds.Households = append(ds.Households, Household{
			Key:           key,
			AgeBracket:    pick(rng, ageGroups),
			MaritalCode:   pick(rng, maritalCodes),
			IncomeBracket: pickWeighted(rng, incomeGroups, incomeWeights),
			Homeowner:     pick(rng, homeownerDescs),
			Composition:   pick(rng, householdComps),
			Size:          pick(rng, householdSizes),
			KidCategory:   pick(rng, kidCategories),
		})
	}

	for i := 1; i <= ProductCount; i++ {
		dept := pick(rng, departments)
		commodity := pick(rng, commoditiesByDept[dept])
		ds.Products = append(ds.Products, Product{
			ID:           1000 + i,
			Manufacturer: 1 + rng.Intn(99),
			Department:   dept,
			Brand:        pick(rng, []string{"National", "Private"}),
			Commodity:    commodity,
			SubCommodity: "SUB_" + commodity,
			Size:         fmt.Sprintf("%d OZ", 5+rng.Intn(45)),
		})
	}

	startDate := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < TransactionCount; i++ {
		hh := ds.Households[rng.Intn(len(ds.Households))]
		product := ds.Products[rng.Intn(len(ds.Products))]

		daysOffset := rng.Intn(365)
		day := startDate.AddDate(0, 0, daysOffset)
		isWeekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday

		basePrice := 1.0 + rng.Float64()*9.0
		if hh.IncomeBracket == "100-124K" || hh.IncomeBracket == "150-174K" || hh.IncomeBracket == "250K+" {
			basePrice *= 1.5
		}

		qty := 1 + rng.Intn(2)
		if hh.KidCategory != "None/Unknown" {
			qty += 1 + rng.Intn(2)
		}
		if isWeekend && rng.Float64() < 0.2 {
			qty++
		}

		salesValue := round2(basePrice * float64(qty))
		var retailDisc float64
		if rng.Float64() > 0.8 {
			retailDisc = round2(salesValue * 0.1)
		}

		ds.Transactions = append(ds.Transactions, Transaction{
			HouseholdKey: hh.Key,
			BasketID:     30000000000 + int64(i)/3,
			Day:          day,
			ProductID:    product.ID,
			Quantity:     qty,
			SalesValue:   salesValue,
			StoreID:      pick(rng, storeIDs),
			RetailDisc:   retailDisc,
			TransTime:    800 + rng.Intn(1400),
			WeekNo:       daysOffset/7 + 1,
		})
	}
	return ds
}

func pick[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}

func pickWeighted(rng *rand.Rand, options []string, weights []float64) string {
	roll := rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if roll < cum {
			return options[i]
		}
	}
	return options[len(options)-1]
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
