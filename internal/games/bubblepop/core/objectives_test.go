package core_test

import (
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func farmTheme() core.ThemeConfig {
	tc, _ := core.ThemeConfigFor(core.ThemeFarm)
	return tc
}

func TestParseObjective(t *testing.T) {
	tests := []struct {
		desc   string
		target int
	}{
		{"Pop 20 colorful bubbles", 20},
		{"Find 2 rainbow bubbles", 2},
		{"Pop 35 bubbles in 60 seconds", 35},
		{"Avoid mud bubbles", 0},
		{"", 0},
	}

	for _, tc := range tests {
		obj := core.ParseObjective(tc.desc)
		if obj.Target != tc.target || obj.Current != 0 || obj.Completed {
			t.Errorf("ParseObjective(%q) = %+v, expected target %d, current 0, not completed", tc.desc, obj, tc.target)
		}
		if obj.Description != tc.desc {
			t.Errorf("Description = %q, expected %q", obj.Description, tc.desc)
		}
	}
}

func TestTrackerCompletesAfterTwentiethPop(t *testing.T) {
	tr := core.NewTracker("Pop 20 colorful bubbles", "", farmTheme())

	for i := 1; i <= 20; i++ {
		tr.UpdateProgress(core.SlotPrimary, 1)
		if done := tr.Complete(); done != (i == 20) {
			t.Fatalf("after %d updates Complete() = %v, expected %v", i, done, i == 20)
		}
	}
}

func TestTrackerClampsAndIgnoresNegative(t *testing.T) {
	tr := core.NewTracker("Pop 5 bubbles", "", farmTheme())

	tr.UpdateProgress(core.SlotPrimary, 3)
	tr.UpdateProgress(core.SlotPrimary, -2)
	if got := tr.Primary().Current; got != 3 {
		t.Errorf("Current = %d, expected 3 after a negative delta", got)
	}

	tr.UpdateProgress(core.SlotPrimary, 10)
	if got := tr.Primary().Current; got != 5 {
		t.Errorf("Current = %d, expected clamp at 5", got)
	}
	if !tr.Primary().Completed {
		t.Error("objective should be completed")
	}
}

func TestTrackerNeedsSecondary(t *testing.T) {
	tr := core.NewTracker("Pop 2 bubbles", "Find 1 rainbow bubble", farmTheme())
	tr.UpdateProgress(core.SlotPrimary, 2)
	if tr.Complete() {
		t.Error("Complete() should wait for the secondary objective")
	}
	tr.UpdateProgress(core.SlotSecondary, 1)
	if !tr.Complete() {
		t.Error("Complete() should be true once both objectives are met")
	}
}

func TestTrackerZeroTargetStartsCompleted(t *testing.T) {
	tr := core.NewTracker("Pop 30 bubbles", "Avoid mud bubbles", farmTheme())
	sec, ok := tr.Secondary()
	if !ok || !sec.Completed {
		t.Errorf("Secondary() = %+v, %v, expected a completed objective", sec, ok)
	}

	tr.Reset()
	sec, _ = tr.Secondary()
	if !sec.Completed {
		t.Error("zero-target objective should stay completed after Reset")
	}
}

func TestClassifySecondaryForAllLevels(t *testing.T) {
	tests := []struct {
		level     int
		category  core.Category
		ambiguous bool
	}{
		{1, core.CategoryItem, false},
		{2, core.CategoryAvoid, false},
		{3, core.CategorySpecial, false},
		{4, core.CategoryLarge, false},
		{5, core.CategoryItem, true},
		{6, core.CategoryItem, false},
		{7, core.CategoryAvoid, false},
		{8, core.CategorySpecial, false},
		{9, core.CategorySmall, false},
		{10, core.CategoryItem, true},
		{11, core.CategoryItem, false},
		{13, core.CategorySpecial, false},
		{14, core.CategorySmall, false},
		{16, core.CategoryItem, false},
		{17, core.CategoryAvoid, false},
		{18, core.CategorySpecial, false},
		{20, core.CategoryItem, true},
	}

	for _, tc := range tests {
		cfg := mustLevel(tc.level)
		theme, _ := core.ThemeConfigFor(cfg.Theme)
		got := core.ClassifySecondary(cfg.Secondary, theme)
		if got.Category != tc.category || got.Ambiguous != tc.ambiguous {
			t.Errorf("level %d %q -> %v (ambiguous %v), expected %v (ambiguous %v)",
				tc.level, cfg.Secondary, got.Category, got.Ambiguous, tc.category, tc.ambiguous)
		}
	}
}

func TestClassifySecondaryEdgeCases(t *testing.T) {
	farm := farmTheme()

	tests := []struct {
		desc      string
		category  core.Category
		ambiguous bool
	}{
		{"Find 2 shiny bubbles", core.CategorySpecial, true},
		{"Pop 3 carrots", core.CategoryItem, false},
		{"Do a little dance", core.CategoryNone, true},
		{"Avoid large mud bubbles", core.CategoryAvoid, false},
	}

	for _, tc := range tests {
		got := core.ClassifySecondary(tc.desc, farm)
		if got.Category != tc.category || got.Ambiguous != tc.ambiguous {
			t.Errorf("ClassifySecondary(%q) = %+v, expected %v (ambiguous %v)", tc.desc, got, tc.category, tc.ambiguous)
		}
	}
}

func TestRecordPopAttribution(t *testing.T) {
	tr := core.NewTracker("Pop 35 bubbles", "Pop 5 large bubbles", farmTheme())

	large := core.NewBubble("l", core.KindColor, 0, 0, core.SizeLarge, "blue", 160)
	medium := core.NewBubble("m", core.KindItem, 0, 0, core.SizeMedium, "apple", 160)
	avoider := core.NewBubble("a", core.KindAvoider, 0, 0, core.SizeLarge, "mud", 160)

	if a := tr.RecordPop(large); !a.Primary || !a.Secondary {
		t.Errorf("large pop attribution = %+v, expected primary and secondary", a)
	}
	if a := tr.RecordPop(medium); !a.Primary || a.Secondary {
		t.Errorf("medium pop attribution = %+v, expected primary only", a)
	}
	if a := tr.RecordPop(avoider); a.Primary || a.Secondary || !a.Violation {
		t.Errorf("avoider pop attribution = %+v, expected violation only", a)
	}

	sec, _ := tr.Secondary()
	if tr.Primary().Current != 2 || sec.Current != 1 {
		t.Errorf("progress = %d/%d, expected 2/1", tr.Primary().Current, sec.Current)
	}
	if tr.AvoidViolations() != 1 {
		t.Errorf("AvoidViolations() = %d, expected 1", tr.AvoidViolations())
	}
}

func TestRecordPopGenericSecondaryCounts(t *testing.T) {
	tests := []struct {
		secondary string
		kind      core.Kind
	}{
		{"Complete 3 farm collection", core.KindItem},
		{"Find 2 shiny bubbles", core.KindSpecial},
	}

	for _, tc := range tests {
		tr := core.NewTracker("Pop 20 bubbles", tc.secondary, farmTheme())
		if !tr.Classification().Ambiguous {
			t.Errorf("%q: Classification().Ambiguous = false, expected true", tc.secondary)
		}
		b := core.NewBubble("b", tc.kind, 0, 0, core.SizeMedium, "apple", 160)
		if a := tr.RecordPop(b); !a.Primary || !a.Secondary {
			t.Errorf("%q: RecordPop() = %+v, expected primary and secondary", tc.secondary, a)
		}
		if sec, _ := tr.Secondary(); sec.Current != 1 {
			t.Errorf("%q: secondary Current = %d, expected 1", tc.secondary, sec.Current)
		}

		regular := core.NewBubble("r", core.KindColor, 0, 0, core.SizeMedium, "blue", 160)
		if a := tr.RecordPop(regular); a.Secondary {
			t.Errorf("%q: regular pop counted toward secondary", tc.secondary)
		}
	}
}

func TestRecordPopIgnoredAfterCompletion(t *testing.T) {
	tr := core.NewTracker("Pop 1 bubble", "", farmTheme())
	b := core.NewBubble("b", core.KindColor, 0, 0, core.SizeMedium, "blue", 160)

	tr.RecordPop(b)
	if !tr.Complete() {
		t.Fatal("tracker should be complete after one pop")
	}
	if a := tr.RecordPop(b); a != (core.Attribution{}) {
		t.Errorf("attribution after completion = %+v, expected none", a)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := core.NewTracker("Pop 2 bubbles", "Collect 1 farm item", farmTheme())
	tr.UpdateProgress(core.SlotPrimary, 2)
	tr.UpdateProgress(core.SlotSecondary, 1)
	tr.Reset()

	sec, _ := tr.Secondary()
	if tr.Primary().Current != 0 || tr.Primary().Completed || sec.Current != 0 || sec.Completed {
		t.Errorf("after Reset: primary %+v, secondary %+v, expected cleared", tr.Primary(), sec)
	}
}
