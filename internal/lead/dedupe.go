package lead

import (
	"sort"
	"strings"
)

// DedupeBatchLimit membatasi scan pairwise O(n²) supaya biaya tetap
// terkendali di tenant besar.
const DedupeBatchLimit = 100

const (
	confidenceEmail = 95
	confidencePhone = 90
	confidenceName  = 72

	confidenceExtraSignal = 3
	confidenceMax         = 99
)

type DuplicateGroup struct {
	Leads      []Lead
	Signals    []string
	Confidence int
}

// DetectDuplicates melakukan scan pairwise atas batch lead. Dua lead
// dianggap kandidat duplikat kalau berbagi salah satu sinyal:
//   - email ternormalisasi (lowercase, trim) yang sama,
//   - digit telepon ternormalisasi yang sama (10 digit terakhir),
//   - nama yang saling substring (case-insensitive).
//
// Pasangan yang terhubung digabung transitif jadi satu grup.
func DetectDuplicates(leads []Lead) []DuplicateGroup {
	if len(leads) > DedupeBatchLimit {
		leads = leads[:DedupeBatchLimit]
	}

	n := len(leads)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	// Sinyal dicatat per pasangan lalu diagregasi per grup.
	groupSignals := make(map[int]map[string]bool)
	markSignal := func(i, j int, signal string) {
		union(i, j)
		root := find(i)
		if groupSignals[root] == nil {
			groupSignals[root] = map[string]bool{}
		}
		groupSignals[root][signal] = true
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := leads[i], leads[j]

			if e1, e2 := normalizeEmail(a.Email), normalizeEmail(b.Email); e1 != "" && e1 == e2 {
				markSignal(i, j, "email")
			}
			if p1, p2 := NormalizePhoneDigits(a.Phone), NormalizePhoneDigits(b.Phone); p1 != "" && p1 == p2 {
				markSignal(i, j, "phone")
			}
			if namesOverlap(a.Name, b.Name) {
				markSignal(i, j, "name")
			}
		}
	}

	// Sinyal bisa tercatat di root lama sebelum dua grup digabung;
	// satukan ulang ke root final.
	merged := make(map[int]map[string]bool)
	for root, signals := range groupSignals {
		final := find(root)
		if merged[final] == nil {
			merged[final] = map[string]bool{}
		}
		for s := range signals {
			merged[final][s] = true
		}
	}

	members := make(map[int][]Lead)
	for i := 0; i < n; i++ {
		root := find(i)
		if merged[root] == nil {
			continue
		}
		members[root] = append(members[root], leads[i])
	}

	groups := make([]DuplicateGroup, 0, len(members))
	for root, ls := range members {
		if len(ls) < 2 {
			continue
		}
		signals := sortedSignals(merged[root])
		groups = append(groups, DuplicateGroup{
			Leads:      ls,
			Signals:    signals,
			Confidence: confidenceFor(signals),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Confidence > groups[j].Confidence
	})
	return groups
}

// confidenceFor deterministik: basis dari sinyal terkuat, +3 per
// sinyal tambahan, maksimum 99.
func confidenceFor(signals []string) int {
	base := 0
	for _, s := range signals {
		v := 0
		switch s {
		case "email":
			v = confidenceEmail
		case "phone":
			v = confidencePhone
		case "name":
			v = confidenceName
		}
		if v > base {
			base = v
		}
	}
	conf := base + confidenceExtraSignal*(len(signals)-1)
	if conf > confidenceMax {
		conf = confidenceMax
	}
	return conf
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func namesOverlap(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func sortedSignals(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
