// Package quest tracks collect-N objectives. Definitions come from
// config; progress is driven by harvest results and rewards land in
// the player inventory on completion.
package quest

import (
	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/items"
)

// Quest is one objective with live progress.
type Quest struct {
	Def      config.QuestDef `json:"def"`
	Progress int             `json:"progress"`
	Complete bool            `json:"complete"`
}

// Log holds the session's quests.
type Log struct {
	quests []*Quest
}

// NewLog builds a quest log from config definitions. Entries without a
// resource or a positive amount are dropped.
func NewLog(defs []config.QuestDef) *Log {
	l := &Log{}
	for _, d := range defs {
		if d.Resource == "" || d.Amount <= 0 {
			continue
		}
		l.quests = append(l.quests, &Quest{Def: d})
	}
	return l
}

// Quests returns the quest list.
func (l *Log) Quests() []*Quest { return l.quests }

// OnHarvest applies a harvest result to every open quest and returns
// the titles of quests completed by it. Rewards are deposited into inv.
func (l *Log) OnHarvest(resource string, amount int, inv *items.Inventory) []string {
	var completed []string
	for _, q := range l.quests {
		if q.Complete || q.Def.Resource != resource {
			continue
		}
		q.Progress += amount
		if q.Progress >= q.Def.Amount {
			q.Progress = q.Def.Amount
			q.Complete = true
			if q.Def.RewardItem != "" && q.Def.RewardCount > 0 {
				inv.Add(q.Def.RewardItem, q.Def.RewardCount)
			}
			completed = append(completed, q.Def.Title)
		}
	}
	return completed
}
