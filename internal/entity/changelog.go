package entity

import "strconv"

type ChangelogEntry struct {
	CN  string `json:"cn"`
	ENG string `json:"eng"`
}

type Changelog struct {
	CurVersion int                       `json:"curVersion"`
	Histories  map[string]ChangelogEntry `json:"histories"`
}

func NewChangelog() *Changelog {
	return &Changelog{
		CurVersion: 0,
		Histories:  make(map[string]ChangelogEntry),
	}
}

func (c *Changelog) Entry(version int) (ChangelogEntry, bool) {
	e, ok := c.Histories[strconv.Itoa(version)]

	return e, ok
}

// Clone returns a deep copy so callers can mutate it before persisting.
func (c *Changelog) Clone() *Changelog {
	cp := &Changelog{
		CurVersion: c.CurVersion,
		Histories:  make(map[string]ChangelogEntry, len(c.Histories)),
	}
	for k, v := range c.Histories {
		cp.Histories[k] = v
	}

	return cp
}

// Append stores entry under the next version and returns that version.
func (c *Changelog) Append(entry ChangelogEntry) int {
	if c.Histories == nil {
		c.Histories = make(map[string]ChangelogEntry)
	}

	c.CurVersion++
	c.Histories[strconv.Itoa(c.CurVersion)] = entry

	return c.CurVersion
}
