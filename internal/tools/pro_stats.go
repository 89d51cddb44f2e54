package tools

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
)

const (
	msgUnknownStat   = "Could not determine which stat to compare."
	msgUnknownPlayer = "Please specify at least one known player."
)

//go:embed players.yaml
var playersYAML []byte

// statKeywords is scanned in order; the first keyword present picks the stat.
// "distance" and "driving" both mean Driving Distance.
var statKeywords = []struct{ keyword, stat string }{
	{"putting", "SG Putting"},
	{"distance", "Driving Distance"},
	{"accuracy", "Driving Accuracy"},
	{"driving", "Driving Distance"},
}

type PlayerStats struct {
	Name  string             `yaml:"name"`
	Stats map[string]float64 `yaml:"stats"`
}

// ProStatsTool compares players from a static stats table.
type ProStatsTool struct {
	players []PlayerStats
}

// NewProStatsTool loads the embedded stats table.
func NewProStatsTool() (*ProStatsTool, error) {
	players, err := parsePlayers(playersYAML)
	if err != nil {
		return nil, err
	}
	return &ProStatsTool{players: players}, nil
}

// NewProStatsToolWith uses the given table instead of the embedded one.
func NewProStatsToolWith(players []PlayerStats) *ProStatsTool {
	cp := make([]PlayerStats, len(players))
	copy(cp, players)
	return &ProStatsTool{players: cp}
}

func parsePlayers(b []byte) ([]PlayerStats, error) {
	var doc struct {
		Players []PlayerStats `yaml:"players"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse players table: %w", err)
	}
	if len(doc.Players) == 0 {
		return nil, fmt.Errorf("parse players table: no players")
	}
	return doc.Players, nil
}

func (t *ProStatsTool) ID() models.ToolID { return models.ToolProStats }

func (t *ProStatsTool) Execute(ctx context.Context, query string) (string, error) {
	zerolog.Ctx(ctx).Debug().Str("tool", string(t.ID())).Str("query", query).Msg("tool called")

	q := strings.ToLower(query)
	stat := ""
	for _, k := range statKeywords {
		if strings.Contains(q, k.keyword) {
			stat = k.stat
			break
		}
	}
	if stat == "" {
		return msgUnknownStat, nil
	}

	found := t.matchPlayers(q)
	if len(found) == 0 {
		return msgUnknownPlayer, nil
	}

	lines := make([]string, len(found))
	for i, p := range found {
		lines[i] = fmt.Sprintf("%s: %s", p.Name, formatStat(p.Stats, stat))
	}
	if len(found) == 1 {
		return fmt.Sprintf("%s for %s: %s", stat, found[0].Name, lines[0]), nil
	}
	var b strings.Builder
	b.WriteString(stat + " comparison:")
	for _, ln := range lines {
		b.WriteString("\n- " + ln)
	}
	return b.String(), nil
}

// matchPlayers tries full names first, then falls back to name parts longer
// than two characters. q must already be lower-cased.
func (t *ProStatsTool) matchPlayers(q string) []PlayerStats {
	var found []PlayerStats
	for _, p := range t.players {
		if strings.Contains(q, strings.ToLower(p.Name)) {
			found = append(found, p)
		}
	}
	if len(found) > 0 {
		return found
	}
	for _, p := range t.players {
		for _, part := range strings.Fields(strings.ToLower(p.Name)) {
			if len(part) > 2 && strings.Contains(q, part) {
				found = append(found, p)
				break
			}
		}
	}
	return found
}

func formatStat(stats map[string]float64, stat string) string {
	v, ok := stats[stat]
	if !ok {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
