package cities

import "testing"

func TestRegistryEnglishNamesUnique(t *testing.T) {
	seen := make(map[string]bool, len(registry))
	for _, c := range registry {
		if seen[c.EnglishName] {
			t.Errorf("duplicate english name %q", c.EnglishName)
		}
		seen[c.EnglishName] = true
	}
}

func TestRegistryComplete(t *testing.T) {
	for _, c := range registry {
		if c.EnglishName == "" || c.BulgarianName == "" {
			t.Errorf("city %+v missing a name", c)
		}
		if c.Latitude < 41 || c.Latitude > 45 || c.Longitude < 22 || c.Longitude > 29 {
			t.Errorf("city %s coordinates %f,%f outside Bulgaria", c.EnglishName, c.Latitude, c.Longitude)
		}
	}
}

func TestFindByEnglishName(t *testing.T) {
	c, ok := FindByEnglishName("Sofia")
	if !ok {
		t.Fatal("Sofia not found")
	}
	if c.BulgarianName != "София" {
		t.Errorf("BulgarianName = %q, want София", c.BulgarianName)
	}

	if _, ok := FindByEnglishName("Atlantis"); ok {
		t.Error("Atlantis should not be found")
	}
	if IsValid("Atlantis") {
		t.Error("IsValid(Atlantis) = true")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].EnglishName = "mutated"
	if registry[0].EnglishName == "mutated" {
		t.Error("All() exposed the internal registry")
	}
}
