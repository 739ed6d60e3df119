package players

import (
	"sort"
)

// Directory is an immutable name to stats-API id mapping for the players
// the service knows about. Build one with New and inject it; lookups are
// safe for concurrent use.
type Directory struct {
	ids   map[string]int
	names map[int]string
	list  []string
}

// New builds the directory from the built-in player table.
func New() *Directory {
	d := &Directory{
		ids:   make(map[string]int, len(playerTable)),
		names: make(map[int]string, len(playerTable)),
		list:  make([]string, 0, len(playerTable)),
	}
	for name, id := range playerTable {
		d.ids[name] = id
		d.names[id] = name
		d.list = append(d.list, name)
	}
	sort.Strings(d.list)
	return d
}

// Names returns all player names in alphabetical order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.list))
	copy(out, d.list)
	return out
}

// IDFor looks up a player's stats-API id by exact display name. The
// second return is false when the name is not in the directory, which is
// a normal outcome the caller handles, not an error.
func (d *Directory) IDFor(name string) (int, bool) {
	id, ok := d.ids[name]
	return id, ok
}

// NameFor is the reverse lookup, used for captions and logging.
func (d *Directory) NameFor(id int) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// Len returns the number of directory entries.
func (d *Directory) Len() int {
	return len(d.list)
}

var playerTable = map[string]int{
	"Aaron Gordon":             203932,
	"Al Horford":               201143,
	"Alperen Sengun":           1630578,
	"Amen Thompson":            1641708,
	"Anthony Davis":            203076,
	"Anthony Edwards":          1630162,
	"Austin Reaves":            1630559,
	"Bam Adebayo":              1628389,
	"Bradley Beal":             203078,
	"Brandon Ingram":           1627742,
	"Brandon Miller":           1641458,
	"Brook Lopez":              201572,
	"Cade Cunningham":          1630595,
	"Cam Thomas":               1630216,
	"Chet Holmgren":            1631096,
	"Chris Paul":               101108,
	"CJ McCollum":              203468,
	"Coby White":               1629632,
	"Damian Lillard":           203081,
	"Daniel Gafford":           1629657,
	"Darius Garland":           1629636,
	"De'Aaron Fox":             1628368,
	"Dereck Lively II":         1641854,
	"Derrick White":            1628401,
	"Desmond Bane":             1630217,
	"Devin Booker":             1626164,
	"Dillon Brooks":            1628415,
	"Domantas Sabonis":         1627734,
	"Donovan Mitchell":         1628378,
	"Draymond Green":           203110,
	"Evan Mobley":              1630596,
	"Franz Wagner":             1630532,
	"Fred VanVleet":            1627832,
	"Giannis Antetokounmpo":    203507,
	"Gradey Dick":              1641711,
	"Grayson Allen":            1628960,
	"Herbert Jones":            1630573,
	"Immanuel Quickley":        1630193,
	"Isaiah Hartenstein":       1628392,
	"Ja Morant":                1629630,
	"Jabari Smith Jr.":         1631095,
	"Jaden McDaniels":          1630165,
	"Jaime Jaquez Jr.":         1641735,
	"Jalen Brunson":            1628973,
	"Jalen Duren":              1631105,
	"Jalen Green":              1630224,
	"Jalen Johnson":            1630550,
	"Jalen Suggs":              1630591,
	"Jalen Williams":           1630554,
	"Jamal Murray":             1627750,
	"Jaren Jackson Jr.":        1628991,
	"Jarrett Allen":            1628386,
	"Jaylen Brown":             1627759,
	"Jayson Tatum":             1628369,
	"Jerami Grant":             203924,
	"Jericho Sims":             1630598,
	"Jimmy Butler":             202710,
	"Jock Landale":             1629677,
	"Joel Embiid":              203954,
	"Jonas Valanciunas":        202685,
	"Jonathan Kuminga":         1630228,
	"Jordan Poole":             1629673,
	"Josh Giddey":              1630581,
	"Josh Green":               1630182,
	"Josh Hart":                1628404,
	"Julius Randle":            203944,
	"Karl-Anthony Towns":       1626157,
	"Kawhi Leonard":            202695,
	"Keegan Murray":            1630568,
	"Kentavious Caldwell-Pope": 203484,
	"Kevin Durant":             201142,
	"Khris Middleton":          203114,
	"Klay Thompson":            202691,
	"Kristaps Porzingis":       204001,
	"Kyle Kuzma":               1628398,
	"Kyrie Irving":             202681,
	"Lauri Markkanen":          1628374,
	"LeBron James":             2544,
	"Luka Dončić":              1629029,
	"Luguentz Dort":            1629216,
	"Malik Monk":               1627774,
	"Marcus Smart":             203935,
	"Mark Williams":            1630576,
	"Michael Porter Jr.":       1629718,
	"Mikal Bridges":            1628969,
	"Mike Conley":              201144,
	"Mitchell Robinson":        1629011,
	"Myles Turner":             1626167,
	"Naz Reid":                 1630222,
	"Nikola Jokić":             203999,
	"Nikola Vučević":           202696,
	"Norman Powell":            1626181,
	"OG Anunoby":               1628384,
	"Paolo Banchero":           1631094,
	"Pascal Siakam":            1627783,
	"Paul George":              202331,
	"Reed Sheppard":            1641742,
	"RJ Barrett":               1629628,
	"Rudy Gobert":              203497,
	"Russell Westbrook":        201566,
	"Scottie Barnes":           1630567,
	"Shai Gilgeous-Alexander":  1628983,
	"Stephen Curry":            201939,
	"Trae Young":               1629027,
	"Tyler Herro":              1629639,
	"Tyrese Haliburton":        1630169,
	"Tyrese Maxey":             1630178,
	"Victor Wembanyama":        1641705,
	"Zach LaVine":              203897,
	"Zion Williamson":          1629627,
}
