package sample

import "github.com/okian/portalrank/internal/domain/model"

// OtherConference is reported for teams outside the known conferences.
const OtherConference = "Other"

// Conferences maps conference names to member programs.
var Conferences = map[string][]string{
	"SEC":         {"Georgia", "Alabama", "LSU", "Tennessee", "Texas A&M", "Florida", "Auburn", "Ole Miss", "Kentucky", "South Carolina", "Missouri", "Texas", "Oklahoma"},
	"Big Ten":     {"Ohio State", "Michigan", "Penn State", "Wisconsin", "Oregon"},
	"Big 12":      {"Colorado", "Arizona"},
	"ACC":         {"Florida State", "Clemson", "Miami"},
	"Independent": {"Notre Dame"},
	"Pac-12":      {"USC"},
}

var conferenceOf = func() map[string]string {
	m := make(map[string]string)
	for conf, teams := range Conferences {
		for _, t := range teams {
			m[t] = conf
		}
	}
	return m
}()

// ConferenceOf returns team's conference, or OtherConference.
func ConferenceOf(team string) string {
	if c, ok := conferenceOf[team]; ok {
		return c
	}
	return OtherConference
}

// Program is a sample team with its portal volume.
type Program struct {
	Name     string
	Inflows  int
	Outflows int
}

// Programs is the 25-team sample league.
var Programs = []Program{
	{"Georgia", 14, 8},
	{"Alabama", 12, 11},
	{"Ohio State", 11, 9},
	{"Texas", 13, 7},
	{"Oregon", 10, 6},
	{"Penn State", 9, 8},
	{"Michigan", 8, 12},
	{"Notre Dame", 10, 5},
	{"LSU", 11, 9},
	{"USC", 12, 10},
	{"Florida State", 9, 11},
	{"Clemson", 8, 7},
	{"Tennessee", 10, 8},
	{"Oklahoma", 11, 13},
	{"Miami", 9, 6},
	{"Florida", 8, 10},
	{"Auburn", 10, 9},
	{"Texas A&M", 9, 11},
	{"Wisconsin", 7, 8},
	{"Ole Miss", 11, 7},
	{"Colorado", 15, 14},
	{"South Carolina", 8, 9},
	{"Kentucky", 9, 8},
	{"Arizona", 10, 6},
	{"Missouri", 8, 7},
}

// classOdds weights the class draw toward upperclassmen.
var classOdds = []struct {
	class model.Class
	p     float64
}{
	{model.Freshman, 0.02},
	{model.RedshirtFreshman, 0.05},
	{model.Sophomore, 0.10},
	{model.RedshirtSophomore, 0.12},
	{model.Junior, 0.18},
	{model.RedshirtJunior, 0.15},
	{model.Senior, 0.15},
	{model.RedshirtSenior, 0.13},
	{model.Graduate, 0.10},
}

var firstNames = []string{
	"Marcus", "Jayden", "Cameron", "Devon", "Tyler", "Brandon", "Justin", "Malik", "Darius", "Antonio",
	"Chris", "Jordan", "Xavier", "Caleb", "Isaiah", "Tre", "Keon", "Jalen", "Quincy", "Rashad",
	"Bryce", "Trey", "DeVonte", "Marvin", "Keontae", "Jaylon", "Deon", "Terrell", "Kyler", "Jameson",
}

var lastNames = []string{
	"Williams", "Johnson", "Smith", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor", "Anderson",
	"Thomas", "Jackson", "White", "Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson", "Clark",
	"Lewis", "Lee", "Walker", "Hall", "Allen", "Young", "King", "Wright", "Scott", "Green",
}
