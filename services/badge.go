package services

// Badge tier names, lowest to highest.
const (
	BadgeInitiate  = "Initiate"
	BadgeBuilder   = "Builder"
	BadgeOperator  = "Operator"
	BadgeArchitect = "Architect"
	BadgeIcon      = "Icon"
)

type badgeThreshold struct {
	Points int64
	Name   string
}

// Ordered highest-first; first match wins.
var badgeThresholds = []badgeThreshold{
	{1000, BadgeIcon},
	{500, BadgeArchitect},
	{250, BadgeOperator},
	{100, BadgeBuilder},
}

// BadgeTierFor derives the badge tier from cumulative points. Pure function;
// callers persist the result whenever points change.
func BadgeTierFor(points int64) string {
	for _, t := range badgeThresholds {
		if points >= t.Points {
			return t.Name
		}
	}
	return BadgeInitiate
}
