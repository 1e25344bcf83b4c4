package model

// Action labels the decision a bidding policy took for an hour.
// Keep these values stable; they are reported in stats and CSV output.
type Action string

const (
	ActionNone            Action = ""
	ActionDrive           Action = "drive"
	ActionVoluntaryCharge Action = "voluntary_charge"
	ActionRequiredCharge  Action = "required_charge"
	ActionDischarge       Action = "discharge"
)
