package commands

import "persoole/internal/usecase/pacing"

const (
	Confirmation = pacing.Confirmation
	Interrupt    = "Send anything to interrupt these messages."
	ErrorSuffix  = " Type \"help\" for more."
	HexPrefix    = "Hex Value: "

	InvalidOption   = "Invalid option." + ErrorSuffix
	InvalidRoleID   = "Invalid role ID." + ErrorSuffix
	NoColour        = "No colour provided." + ErrorSuffix
	InvalidColour   = "Invalid colour." + ErrorSuffix
	EditForbidden   = "I do not have permissions to change the role."
	EditFailed      = "Editing the role failed."
	RoleStepAuthor  = "Role ID above. " + Interrupt
	ColourStepQuote = "> " + Interrupt
)

const Usage = "_ _\n" +
	"Your message must be formatted like this:\n" +
	"> [**Role ID**] [**Colour**] [**Name**]\n\n" +
	"For example:\n" +
	"> **987654321987654321 ffffff My Role Name**\n\n" +
	"Type \"**help roles**\" to get your role IDs.\n" +
	"Colour can either be a hex value or a colour name.\n" +
	"Type \"**help colours**\" (or \"**help colors**\") " +
	"to get all acceptable colour names.\n" +
	"Name is optional."
