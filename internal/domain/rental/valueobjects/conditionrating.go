package valueobjects

// ConditionRating records the asset condition observed at dispatch or
// return handover.
type ConditionRating string

const (
	ConditionExcellent ConditionRating = "excellent"
	ConditionGood      ConditionRating = "good"
	ConditionFair      ConditionRating = "fair"
	ConditionPoor      ConditionRating = "poor"
)

func (r ConditionRating) String() string {
	return string(r)
}

var ValidConditionRatings = map[ConditionRating]bool{
	ConditionExcellent: true,
	ConditionGood:      true,
	ConditionFair:      true,
	ConditionPoor:      true,
}
