package archetype

import (
	"reflect"
	"testing"

	"github.com/kyamashiro/ygo-companion/internal/catalog"
)

// loadedReference returns a reference list pre-seeded with the given
// names, never touching the network.
func loadedReference(names ...string) *ReferenceList {
	r := NewReferenceList("http://invalid.localhost")
	r.names = names
	r.loaded = true
	return r
}

func named(id int, name string) catalog.Card {
	return catalog.Card{ID: id, Name: name, Type: "Effect Monster"}
}

func tagged(id int, name, archetype string) catalog.Card {
	return catalog.Card{ID: id, Name: name, Type: "Effect Monster", Archetype: archetype}
}

func TestClassifyEmptyDeck(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Blue-Eyes"))

	got := c.Classify(nil)
	if !reflect.DeepEqual(got, []string{LabelNew}) {
		t.Errorf("expected [New], got %v", got)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Blue-Eyes", "Dark Magician"))

	cards := []catalog.Card{
		named(1, "Blue-Eyes White Dragon"),
		named(2, "Blue-Eyes Alternative White Dragon"),
		named(3, "Dark Magician"),
	}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{LabelMixed}) {
		t.Errorf("expected [Mixed], got %v", got)
	}
}

func TestClassifyDominantArchetype(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Blue-Eyes", "Dark Magician"))

	cards := []catalog.Card{
		named(1, "Blue-Eyes White Dragon"),
		named(2, "Blue-Eyes Alternative White Dragon"),
		named(3, "Blue-Eyes Twin Burst Dragon"),
		named(4, "Dark Magician"),
	}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{"Blue-Eyes"}) {
		t.Errorf("expected [Blue-Eyes], got %v", got)
	}
}

func TestClassifyTwoDominantArchetypes(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Blue-Eyes", "Dark Magician", "Red-Eyes"))

	var cards []catalog.Card
	for i := 0; i < 4; i++ {
		cards = append(cards, named(i, "Blue-Eyes Dragon"))
	}
	for i := 10; i < 13; i++ {
		cards = append(cards, named(i, "Dark Magician Knight"))
	}
	for i := 20; i < 23; i++ {
		cards = append(cards, named(i, "Red-Eyes Black Dragon"))
	}

	got := c.Classify(cards)
	if len(got) != 2 {
		t.Fatalf("expected 2 labels, got %v", got)
	}
	if got[0] != "Blue-Eyes" {
		t.Errorf("expected highest tally first, got %v", got)
	}
	// Dark Magician and Red-Eyes tie at 3; the alphabetically first
	// wins the second slot.
	if got[1] != "Dark Magician" {
		t.Errorf("expected ties broken by name, got %v", got)
	}
}

func TestClassifyExplicitTagWins(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Blue-Eyes"))

	// The names would match Blue-Eyes, but explicit tags short-circuit.
	cards := []catalog.Card{
		tagged(1, "Blue-Eyes Spirit Dragon", "Crystal Beast"),
		tagged(2, "Blue-Eyes Jet Dragon", "Crystal Beast"),
		tagged(3, "Blue-Eyes Abyss Dragon", "Crystal Beast"),
	}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{"Crystal Beast"}) {
		t.Errorf("expected explicit tags to win, got %v", got)
	}
}

func TestClassifyResolvesStubsAgainstCatalog(t *testing.T) {
	cache := catalog.NewCache(nil)
	cache.SetAll([]catalog.Card{
		{ID: 1, Name: "Madolche Puddingcess", Type: "Effect Monster"},
		{ID: 2, Name: "Madolche Magileine", Type: "Effect Monster"},
		{ID: 3, Name: "Madolche Anjelly", Type: "Effect Monster"},
	})
	c := NewClassifier(cache, loadedReference("Madolche"))

	cards := []catalog.Card{catalog.Stub(1), catalog.Stub(2), catalog.Stub(3)}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{"Madolche"}) {
		t.Errorf("expected stubs resolved through catalog, got %v", got)
	}
}

func TestClassifyStubsWithoutCatalogAreMixed(t *testing.T) {
	c := NewClassifier(nil, loadedReference("Madolche"))

	cards := []catalog.Card{catalog.Stub(1), catalog.Stub(2), catalog.Stub(3)}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{LabelMixed}) {
		t.Errorf("expected [Mixed] for unresolvable stubs, got %v", got)
	}
}

func TestClassifySkipsExtraDeckTypeTags(t *testing.T) {
	// "Fusion" appearing as an archetype name is a false positive from
	// type words in card names.
	c := NewClassifier(nil, loadedReference("Fusion", "Madolche"))

	cards := []catalog.Card{
		named(1, "Fusion Recovery"),
		named(2, "Fusion Sage"),
		named(3, "Fusion Gate"),
	}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{LabelMixed}) {
		t.Errorf("expected type-word tally excluded, got %v", got)
	}
}

func TestClassifyFirstMatchPerCard(t *testing.T) {
	// A card matching several reference names only counts once, for the
	// first name in list order.
	c := NewClassifier(nil, loadedReference("Blue-Eyes", "Blue-Eyes White"))

	cards := []catalog.Card{
		named(1, "Blue-Eyes White Dragon"),
		named(2, "Blue-Eyes White Dragon"),
		named(3, "Blue-Eyes White Dragon"),
	}
	got := c.Classify(cards)
	if !reflect.DeepEqual(got, []string{"Blue-Eyes"}) {
		t.Errorf("expected single tally per card, got %v", got)
	}
}
