package quest

import (
	"testing"

	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/items"
)

func TestQuestProgressAndReward(t *testing.T) {
	l := NewLog([]config.QuestDef{
		{ID: "q1", Title: "Timber!", Resource: "wood", Amount: 5, RewardItem: "plank", RewardCount: 2},
	})
	inv := items.NewInventory()

	if done := l.OnHarvest("wood", 3, inv); len(done) != 0 {
		t.Fatal("quest completed early")
	}
	done := l.OnHarvest("wood", 4, inv)
	if len(done) != 1 || done[0] != "Timber!" {
		t.Fatalf("completed = %v, want [Timber!]", done)
	}
	q := l.Quests()[0]
	if !q.Complete || q.Progress != 5 {
		t.Fatalf("quest state %+v after completion", q)
	}
	if inv.Count("plank") != 2 {
		t.Fatalf("reward plank count = %d, want 2", inv.Count("plank"))
	}

	// Completed quests ignore further harvests.
	if done := l.OnHarvest("wood", 10, inv); len(done) != 0 {
		t.Fatal("completed quest completed again")
	}
}

func TestUnrelatedResourceIgnored(t *testing.T) {
	l := NewLog(config.Default().Quests)
	inv := items.NewInventory()
	l.OnHarvest("gem", 100, inv)
	for _, q := range l.Quests() {
		if q.Def.Resource != "gem" && q.Progress != 0 {
			t.Fatalf("quest %s progressed on unrelated resource", q.Def.ID)
		}
	}
}

func TestMalformedDefsDropped(t *testing.T) {
	l := NewLog([]config.QuestDef{
		{ID: "bad1", Resource: "", Amount: 5},
		{ID: "bad2", Resource: "wood", Amount: 0},
		{ID: "ok", Resource: "wood", Amount: 1},
	})
	if len(l.Quests()) != 1 {
		t.Fatalf("log kept %d quests, want 1", len(l.Quests()))
	}
}
