package mapper

import "github.com/vecino/marketplace/internal/domain/entity"

// Shared value-object conversions. The read direction always fills
// defaults when the sub-document is absent (money falls back to amount 0
// in the supported currency).

func moneyDoc(m entity.Money) Document {
	return Document{"amount": m.Amount, "currency": m.Currency}
}

func moneyFromDoc(doc Document) entity.Money {
	if doc == nil {
		return entity.Money{Amount: 0, Currency: entity.DefaultCurrency}
	}
	return entity.Money{
		Amount:   num(doc, "amount"),
		Currency: str(doc, "currency"),
	}
}

func addressDoc(a entity.Address) Document {
	return Document{
		"street":     a.Street,
		"city":       a.City,
		"state":      a.State,
		"postalCode": a.PostalCode,
		"country":    a.Country,
	}
}

func addressFromDoc(doc Document) entity.Address {
	return entity.Address{
		Street:     str(doc, "street"),
		City:       str(doc, "city"),
		State:      str(doc, "state"),
		PostalCode: str(doc, "postalCode"),
		Country:    str(doc, "country"),
	}
}

func geoDoc(g entity.GeoLocation) Document {
	doc := Document{"latitude": g.Latitude, "longitude": g.Longitude}
	if g.RadiusKm != 0 {
		doc["radius"] = g.RadiusKm
	}
	return doc
}

func geoFromDoc(doc Document) entity.GeoLocation {
	if doc == nil {
		return entity.GeoLocation{}
	}
	return entity.GeoLocation{
		Latitude:  num(doc, "latitude"),
		Longitude: num(doc, "longitude"),
		RadiusKm:  num(doc, "radius"),
	}
}
