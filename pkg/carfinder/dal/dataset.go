package dal

// CarsDataset is the built-in mock catalog served by the static source.
var CarsDataset = []Car{
	{
		ID:          1,
		Name:        "Toyota Camry",
		Brand:       "Toyota",
		Price:       25000,
		FuelType:    Petrol,
		Image:       "/toyota-camry.jpg",
		Seats:       5,
		Description: "The Toyota Camry is a mid-size sedan that offers a comfortable ride, excellent fuel economy, and a spacious interior.",
		Features: []string{
			"Apple CarPlay and Android Auto",
			"Lane Departure Warning",
			"Adaptive Cruise Control",
			"Blind Spot Monitoring",
			"Rear Cross Traffic Alert",
		},
	},
	{
		ID:          2,
		Name:        "Honda Civic",
		Brand:       "Honda",
		Price:       22000,
		FuelType:    Petrol,
		Image:       "/honda-civic.jpg",
		Seats:       5,
		Description: "The Honda Civic is a compact car with sharp handling, a roomy cabin and a reputation for reliability.",
		Features: []string{
			"Honda Sensing Safety Suite",
			"Apple CarPlay and Android Auto",
			"Remote Engine Start",
		},
	},
	{
		ID:          3,
		Name:        "Toyota Prius",
		Brand:       "Toyota",
		Price:       28000,
		FuelType:    Hybrid,
		Image:       "/toyota-prius.jpg",
		Seats:       5,
		Description: "The Toyota Prius pairs a petrol engine with an electric motor for class-leading fuel economy.",
		Features: []string{
			"Toyota Safety Sense",
			"Wireless Phone Charging",
			"Head-Up Display",
		},
	},
	{
		ID:          4,
		Name:        "Toyota RAV4",
		Brand:       "Toyota",
		Price:       31000,
		FuelType:    Hybrid,
		Image:       "/toyota-rav4.jpg",
		Seats:       5,
		Description: "The Toyota RAV4 is a compact SUV with all-wheel drive and a versatile cargo area.",
		Features: []string{
			"All-Wheel Drive",
			"Adaptive Cruise Control",
			"Power Liftgate",
		},
	},
	{
		ID:          5,
		Name:        "Honda Accord",
		Brand:       "Honda",
		Price:       27500,
		FuelType:    Petrol,
		Image:       "/honda-accord.jpg",
		Seats:       5,
		Description: "The Honda Accord is a refined mid-size sedan with a turbocharged engine and a quiet cabin.",
		Features: []string{
			"Turbocharged Engine",
			"Heated Front Seats",
			"Dual-Zone Climate Control",
		},
	},
	{
		ID:          6,
		Name:        "Honda CR-V",
		Brand:       "Honda",
		Price:       32000,
		FuelType:    Hybrid,
		Image:       "/honda-crv.jpg",
		Seats:       5,
		Description: "The Honda CR-V is a family SUV with a hybrid powertrain and generous rear legroom.",
		Features: []string{
			"Hybrid Powertrain",
			"Hands-Free Power Tailgate",
			"Blind Spot Information System",
		},
	},
	{
		ID:          7,
		Name:        "Ford Focus",
		Brand:       "Ford",
		Price:       21000,
		FuelType:    Diesel,
		Image:       "/ford-focus.jpg",
		Seats:       5,
		Description: "The Ford Focus is a nimble hatchback with an efficient diesel engine.",
		Features: []string{
			"SYNC 3 Infotainment",
			"Lane Keeping Aid",
			"Rear Parking Sensors",
		},
	},
	{
		ID:          8,
		Name:        "Ford Mustang Mach-E",
		Brand:       "Ford",
		Price:       45000,
		FuelType:    Electric,
		Image:       "/ford-mach-e.jpg",
		Seats:       5,
		Description: "The Ford Mustang Mach-E is an all-electric crossover with brisk acceleration and a long range.",
		Features: []string{
			"BlueCruise Hands-Free Driving",
			"15.5-inch Touchscreen",
			"Phone As A Key",
		},
	},
	{
		ID:          9,
		Name:        "Ford Explorer",
		Brand:       "Ford",
		Price:       38000,
		FuelType:    Petrol,
		Image:       "/ford-explorer.jpg",
		Seats:       7,
		Description: "The Ford Explorer is a three-row SUV with room for seven and strong towing capability.",
		Features: []string{
			"Third-Row Seating",
			"Terrain Management System",
			"Trailer Hitch Assist",
		},
	},
	{
		ID:          10,
		Name:        "BMW 3 Series",
		Brand:       "BMW",
		Price:       43000,
		FuelType:    Petrol,
		Image:       "/bmw-3-series.jpg",
		Seats:       5,
		Description: "The BMW 3 Series is a compact executive sedan known for its balanced handling.",
		Features: []string{
			"iDrive Infotainment",
			"Sport Seats",
			"Parking Assistant",
		},
	},
	{
		ID:          11,
		Name:        "BMW 320d",
		Brand:       "BMW",
		Price:       41000,
		FuelType:    Diesel,
		Seats:       5,
		Description: "The BMW 320d combines the 3 Series chassis with a frugal four-cylinder diesel.",
		Features: []string{
			"Eight-Speed Automatic",
			"LED Headlights",
		},
	},
	{
		ID:          12,
		Name:        "BMW i4",
		Brand:       "BMW",
		Price:       56000,
		FuelType:    Electric,
		Image:       "/bmw-i4.jpg",
		Seats:       5,
		Description: "The BMW i4 is an electric gran coupe with a hatchback tailgate and a sporty drive.",
		Features: []string{
			"Curved Display",
			"Adaptive Suspension",
			"Driving Assistant Professional",
		},
	},
	{
		ID:          13,
		Name:        "BMW X5",
		Brand:       "BMW",
		Price:       65000,
		FuelType:    Hybrid,
		Image:       "/bmw-x5.jpg",
		Seats:       7,
		Description: "The BMW X5 is a luxury SUV with a plug-in hybrid option and an optional third row.",
		Features: []string{
			"Panoramic Sunroof",
			"Air Suspension",
			"Harman Kardon Audio",
		},
	},
	{
		ID:          14,
		Name:        "Mercedes C-Class",
		Brand:       "Mercedes",
		Price:       46000,
		FuelType:    Petrol,
		Image:       "/mercedes-c-class.jpg",
		Seats:       5,
		Description: "The Mercedes C-Class is a luxury sedan with a high-tech cabin and a smooth ride.",
		Features: []string{
			"MBUX Infotainment",
			"Ambient Lighting",
			"Active Brake Assist",
		},
	},
	{
		ID:          15,
		Name:        "Mercedes E 220 d",
		Brand:       "Mercedes",
		Price:       54000,
		FuelType:    Diesel,
		Image:       "/mercedes-e-class.jpg",
		Seats:       5,
		Description: "The Mercedes E 220 d is an executive saloon with a long-legged diesel engine.",
		Features: []string{
			"Widescreen Cockpit",
			"Distronic Adaptive Cruise",
			"Burmester Sound",
		},
	},
	{
		ID:          16,
		Name:        "Mercedes EQS",
		Brand:       "Mercedes",
		Price:       105000,
		FuelType:    Electric,
		Image:       "/mercedes-eqs.jpg",
		Seats:       5,
		Description: "The Mercedes EQS is a flagship electric sedan with an aerodynamic body and a hyperscreen dashboard.",
		Features: []string{
			"MBUX Hyperscreen",
			"Rear-Axle Steering",
			"HEPA Air Filtration",
		},
	},
}
