package classify

import "testing"

func TestClassify_Weather(t *testing.T) {
	prompts := []string{
		"İstanbul'da hava durumu nasıl?",
		"Bugün HAVA çok mu soğuk?",
		"yarın yağmur yağacak mı",
		"Erfurt sıcaklık kaç derece",
		"Rüzgar var mı dışarıda",
	}
	for _, prompt := range prompts {
		if got := Classify(prompt); got != IntentWeather {
			t.Errorf("Classify(%q) = %v, want weather", prompt, got)
		}
	}
}

func TestClassify_Search(t *testing.T) {
	prompts := []string{
		"Kimdir Mustafa Kemal Atatürk?",
		"Löwentech nedir?",
		"bana kuantum bilgisayarları anlat",
		"2024 seçim sonuçları ne oldu",
		"son dakika haberleri",
		"şirketin Löwentech ürünleri",
	}
	for _, prompt := range prompts {
		if got := Classify(prompt); got != IntentSearch {
			t.Errorf("Classify(%q) = %v, want search", prompt, got)
		}
	}
}

func TestClassify_None(t *testing.T) {
	prompts := []string{
		"",
		"   ",
		"merhaba",
		"teşekkür ederim",
		"bir şiir yaz bana",
	}
	for _, prompt := range prompts {
		if got := Classify(prompt); got != IntentNone {
			t.Errorf("Classify(%q) = %v, want none", prompt, got)
		}
	}
}

func TestClassify_WeatherWinsOverSearch(t *testing.T) {
	// "nasıl" alone is a search trigger; the weather keyword takes priority.
	if got := Classify("Ankara'da hava durumu bugün nasıl?"); got != IntentWeather {
		t.Fatalf("Classify = %v, want weather", got)
	}
}

func TestClassify_TurkishCasing(t *testing.T) {
	// Dotted capital İ must fold to i under Turkish rules for the match.
	if got := Classify("SICAKLIK kaç derece?"); got != IntentWeather {
		t.Fatalf("Classify = %v, want weather", got)
	}
}

func TestIntentString(t *testing.T) {
	if IntentWeather.String() != "weather" || IntentSearch.String() != "search" || IntentNone.String() != "none" {
		t.Fatal("unexpected Intent string values")
	}
}
