package team

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/okian/portalrank/internal/domain/model"
)

// Fingerprint hashes every valuation input of roster into a stable 64-bit
// key. Player order within a flow does not affect the key, matching the
// order independence of Aggregate. Display-only player fields are ignored.
func Fingerprint(roster model.Team) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Quote(roster.Name))
	_, _ = d.WriteString(strconv.Quote(roster.Conference))
	writeFlow(d, "in", roster.Inflows)
	writeFlow(d, "out", roster.Outflows)
	return d.Sum64()
}

func writeFlow(d *xxhash.Digest, label string, players []model.Player) {
	keys := make([]string, len(players))
	for i, p := range players {
		keys[i] = playerKey(p)
	}
	sort.Strings(keys)

	_, _ = d.WriteString("|" + label + ":" + strconv.Itoa(len(keys)))
	for _, k := range keys {
		_, _ = d.WriteString(k)
	}
}

func playerKey(p model.Player) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(p.Name))
	b.WriteString(strconv.Quote(string(p.Position)))
	b.WriteString(strconv.Quote(string(p.Class)))
	b.WriteString(strconv.FormatFloat(p.HSRating, 'g', -1, 64))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(p.GamesPlayed))
	b.WriteByte(';')
	if p.StatsPercentile == nil {
		b.WriteString("-")
	} else {
		b.WriteString(strconv.FormatFloat(*p.StatsPercentile, 'g', -1, 64))
	}
	b.WriteByte(';')
	return b.String()
}
