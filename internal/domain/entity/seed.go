package entity

// SeedApartments returns the starter catalog used when no snapshot exists
// yet. Prices are monthly, in naira.
func SeedApartments() []Apartment {
	return []Apartment{
		{
			ID: "1", Name: "Luxury Apartment", Location: "Lekki Phase 1, Lagos",
			Price: 750000, ImageURL: "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 3, Bathrooms: 2, Area: "1200 sq ft",
			Rating: 4.8, Reviews: 24, Amenities: []string{"Swimming Pool", "Gym", "Security"},
			Type: "Luxury", Description: "Beautiful luxury apartment with stunning views",
		},
		{
			ID: "2", Name: "Studio Flat", Location: "Victoria Island, Lagos",
			Price: 450000, ImageURL: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 1, Bathrooms: 1, Area: "450 sq ft",
			Rating: 4.5, Reviews: 18, Amenities: []string{"WiFi", "AC", "Kitchen"},
			Type: "Studio", Description: "Modern studio perfect for young professionals",
		},
		{
			ID: "3", Name: "Cozy 2-Bedroom", Location: "Ikeja, Lagos",
			Price: 600000, ImageURL: "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 2, Bathrooms: 1, Area: "800 sq ft",
			Rating: 4.6, Reviews: 31, Amenities: []string{"Parking", "Garden", "Security"},
			Type: "Family", Description: "Cozy apartment in a quiet neighborhood",
		},
		{
			ID: "4", Name: "Modern Loft", Location: "Surulere, Lagos",
			Price: 500000, ImageURL: "https://images.unsplash.com/photo-1502672023488-70e25813eb80?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 1, Bathrooms: 1, Area: "600 sq ft",
			Rating: 4.7, Reviews: 15, Amenities: []string{"WiFi", "AC", "Modern Kitchen"},
			Type: "Loft", Description: "Contemporary loft with modern amenities",
		},
		{
			ID: "5", Name: "Spacious Family Home", Location: "Yaba, Lagos",
			Price: 800000, ImageURL: "https://images.unsplash.com/photo-1484154218962-a197022b5858?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 4, Bathrooms: 3, Area: "1500 sq ft",
			Rating: 4.9, Reviews: 42, Amenities: []string{"Garden", "Parking", "Security", "Playground"},
			Type: "Family", Description: "Perfect family home with garden",
		},
		{
			ID: "6", Name: "Penthouse Suite", Location: "Ikoyi, Lagos",
			Price: 1200000, ImageURL: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 3, Bathrooms: 3, Area: "2000 sq ft",
			Rating: 5.0, Reviews: 8, Amenities: []string{"Pool", "Gym", "Concierge", "Rooftop"},
			Type: "Luxury", Description: "Luxurious penthouse with premium finishes",
		},
		{
			ID: "7", Name: "Affordable Studio", Location: "Ogba, Lagos",
			Price: 300000, ImageURL: "https://images.unsplash.com/photo-1493809842364-78817add7ffb?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 1, Bathrooms: 1, Area: "400 sq ft",
			Rating: 4.3, Reviews: 22, Amenities: []string{"WiFi", "Kitchen", "AC"},
			Type: "Studio", Description: "Budget-friendly studio apartment",
		},
		{
			ID: "8", Name: "Elegant Duplex", Location: "Lekki Phase 2, Lagos",
			Price: 900000, ImageURL: "https://images.unsplash.com/photo-1505873242700-f289a29e1e0f?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 4, Bathrooms: 3, Area: "1800 sq ft",
			Rating: 4.8, Reviews: 35, Amenities: []string{"Pool", "Garden", "Security", "Parking"},
			Type: "Duplex", Description: "Elegant duplex in prime location",
		},
		{
			ID: "9", Name: "Charming Cottage", Location: "Epe, Lagos",
			Price: 400000, ImageURL: "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=600&h=400&fit=crop",
			Available: true, Bedrooms: 2, Bathrooms: 1, Area: "700 sq ft",
			Rating: 4.4, Reviews: 19, Amenities: []string{"Garden", "Parking", "Quiet Area"},
			Type: "Cottage", Description: "Charming cottage away from city noise",
		},
	}
}
