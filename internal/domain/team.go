package domain

import "fmt"

// Team представляет команду (отдел) сотрудника.
// Набор команд фиксирован, произвольные значения не допускаются.
type Team string

// Допустимые команды
const (
	TeamDanbie  Team = "Danbie"
	TeamDarae   Team = "Darae"
	TeamBlabla  Team = "Blabla"
	TeamCheollo Team = "Cheollo"
	TeamDangi   Team = "Dangi"
	TeamHaetae  Team = "Haetae"
	TeamSupi    Team = "Supi"
)

// Teams содержит все допустимые команды в фиксированном порядке
var Teams = []Team{
	TeamDanbie,
	TeamDarae,
	TeamBlabla,
	TeamCheollo,
	TeamDangi,
	TeamHaetae,
	TeamSupi,
}

// ParseTeam проверяет строку и возвращает команду
func ParseTeam(s string) (Team, error) {
	switch Team(s) {
	case TeamDanbie, TeamDarae, TeamBlabla, TeamCheollo, TeamDangi, TeamHaetae, TeamSupi:
		return Team(s), nil
	default:
		return "", NewValidationError("team", fmt.Sprintf("unknown team %q", s))
	}
}

// Valid возвращает true если команда входит в фиксированный набор
func (t Team) Valid() bool {
	_, err := ParseTeam(string(t))
	return err == nil
}
