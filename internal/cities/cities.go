package cities

// City is a geographic locality usable as a search target.
// EnglishName is the stable identifier; BulgarianName is the localized
// display and match name.
type City struct {
	EnglishName   string  `json:"englishName"`
	BulgarianName string  `json:"bulgarianName"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// registry is the bundled city list. EnglishName must be unique.
var registry = []City{
	{"Sofia", "София", 42.6977, 23.3219},
	{"Plovdiv", "Пловдив", 42.1354, 24.7453},
	{"Varna", "Варна", 43.2141, 27.9147},
	{"Burgas", "Бургас", 42.5048, 27.4626},
	{"Ruse", "Русе", 43.8356, 25.9657},
	{"Stara Zagora", "Стара Загора", 42.4258, 25.6345},
	{"Pleven", "Плевен", 43.4170, 24.6067},
	{"Sliven", "Сливен", 42.6824, 26.3150},
	{"Dobrich", "Добрич", 43.5726, 27.8273},
	{"Shumen", "Шумен", 43.2712, 26.9361},
	{"Pernik", "Перник", 42.6054, 23.0377},
	{"Haskovo", "Хасково", 41.9340, 25.5550},
	{"Yambol", "Ямбол", 42.4841, 26.5035},
	{"Pazardzhik", "Пазарджик", 42.1928, 24.3337},
	{"Blagoevgrad", "Благоевград", 42.0209, 23.0943},
	{"Veliko Tarnovo", "Велико Търново", 43.0757, 25.6172},
	{"Vratsa", "Враца", 43.2102, 23.5629},
	{"Gabrovo", "Габрово", 42.8747, 25.3342},
	{"Vidin", "Видин", 43.9859, 22.8679},
	{"Kardzhali", "Кърджали", 41.6339, 25.3777},
}

// All returns the bundled city list in registry order.
func All() []City {
	out := make([]City, len(registry))
	copy(out, registry)
	return out
}

// FindByEnglishName looks up a city by its stable identifier.
func FindByEnglishName(name string) (City, bool) {
	for _, c := range registry {
		if c.EnglishName == name {
			return c, true
		}
	}
	return City{}, false
}

// IsValid checks if an English city name is part of the registry.
func IsValid(name string) bool {
	_, ok := FindByEnglishName(name)
	return ok
}
