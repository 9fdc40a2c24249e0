package classifier

// defaultEndOfMonth are payments that post in the first days of a month but
// belong to the previous one
var defaultEndOfMonth = []string{"sev petten"}

// defaultCategories is the built-in keyword table (German/English merchants)
var defaultCategories = []Category{
	{Name: "groceries", Keywords: []string{
		"edeka", "rewe", "netto", "lidl", "aldi", "kaufland", "penny",
		"supermarket", "grocery", "lebensmittel", "go asia", "hoffman", "trinkgut", "koro",
	}},
	{Name: "eating_out", Keywords: []string{
		"restaurant", "pizza", "burger", "wolt", "lieferando", "deliveroo",
		"mcdonalds", "kfc", "subway", "doner", "döner", "cafe",
		"bar", "pub", "borgor", "brgrs", "salami social", "nguyen", "nihat dincoglu", "harcourt centre",
		"saigon com nieu", "asiagourmet", "panem garage", "koempul restau", "teegeback",
	}},
	{Name: "household_items", Keywords: []string{
		"dm drogerie", "rossmann",
	}},
	{Name: "pharmacy_health", Keywords: []string{
		"apotheke", "pharmacy", "arzt", "doctor",
		"kranken", "health", "medical", "blanka leeker", "techniker krankenkasse",
		"treatwell", "mikko karhulah", "buycycle",
	}},
	{Name: "rent_and_utilities", Keywords: []string{
		"miete", "rent", "wohnung", "apartment", "sev petten",
		"vattenfall", "strom", "gas", "water", "wasser", "heating", "heizung",
		"electricity", "energie",
		"telekom", "vodafone", "o2", "internet", "telefon", "phone", "mobile",
		"1+1 telecom", "schufa", "squarespace",
	}},
	{Name: "transport", Keywords: []string{
		"bvg", "deutsche bahn", "db", "taxi", "uber", "lyft", "benzin",
		"petrol", "gas station", "tankstelle", "mvg", "transport",
	}},
	{Name: "pet_care", Keywords: []string{
		"fressnapf", "tierarzt", "veterinary", "pet", "dog", "cat",
		"hundesteuer", "tierbedarf", "drobeck", "getsafe", "tierarztpraxis",
	}},
	{Name: "entertainment", Keywords: []string{
		"kino", "cinema", "spotify", "netflix", "concert", "ticket",
		"resident advisor", "club", "bar", "entertainment", "else event",
	}},
	{Name: "bank_fees", Keywords: []string{
		"entgeltabschluss", "gebühr", "fee", "bank charge", "commission", "balance of settlement",
	}},
	{Name: "shopping", Keywords: []string{
		"amazon", "zalando", "otto", "shop", "store", "online",
		"aliexpress",
	}},
}

// DefaultRules returns the built-in rule table
func DefaultRules() *Rules {
	r, err := NewRules(defaultCategories, defaultEndOfMonth)
	if err != nil {
		panic(err)
	}
	return r
}
