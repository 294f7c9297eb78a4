package domain

import "time"

// upgradeCheckInterval is how long a recorded upgrade check stays fresh.
const upgradeCheckInterval = 24 * time.Hour

// Config is the per-user configuration, persisted as JSON under ~/.haul.
// Only Artifactory and Cache are consumed by the fetch pipeline; Container is
// stamped onto fresh lock nodes and UpgradeCheck drives upgrade-check timing.
type Config struct {
	Artifactory  string `json:"artifactory"`
	Cache        string `json:"cache"`
	Container    string `json:"container"`
	UpgradeCheck string `json:"upgradeCheck"`
}

// UpgradeCheckDue reports whether more than a day has passed since the last
// recorded upgrade check. An unparsable timestamp counts as due.
func (c *Config) UpgradeCheckDue(now time.Time) bool {
	last, err := time.Parse(time.RFC3339, c.UpgradeCheck)
	if err != nil {
		return true
	}
	return last.Before(now.Add(-upgradeCheckInterval))
}

// MarkUpgradeChecked stamps the config with the given time.
func (c *Config) MarkUpgradeChecked(now time.Time) {
	c.UpgradeCheck = now.Format(time.RFC3339)
}
