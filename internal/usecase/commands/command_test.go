package commands_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"persoole/internal/usecase/commands"
)

var _ = Describe("Parse", func() {
	DescribeTable("kinds",
		func(text string, want commands.Kind) {
			Expect(commands.Parse(text).Kind).To(Equal(want))
		},
		Entry("help", "help", commands.KindHelpOverview),
		Entry("help is case-insensitive", "HeLp", commands.KindHelpOverview),
		Entry("help with padding", "  help  ", commands.KindHelpOverview),
		Entry("help colours", "help colours", commands.KindHelpColours),
		Entry("help colors", "help COLORS", commands.KindHelpColours),
		Entry("help roles", "help Roles", commands.KindHelpRoles),
		Entry("help unknown option", "help me", commands.KindHelpInvalid),
		Entry("help with too many options", "help roles please", commands.KindHelpInvalid),
		Entry("role id alone", "123", commands.KindRoleEditMissingColour),
		Entry("role id and colour", "123 red", commands.KindRoleEdit),
		Entry("not a number", "hello red", commands.KindRoleEditInvalidRole),
		Entry("empty", "", commands.KindRoleEditInvalidRole),
		Entry("whitespace", " \t\n", commands.KindRoleEditInvalidRole),
	)

	It("captures role id, colour token and name", func() {
		cmd := commands.Parse("123 FFFFFF My   Role\tName")

		Expect(cmd.Kind).To(Equal(commands.KindRoleEdit))
		Expect(cmd.RoleID).To(Equal("123"))
		Expect(cmd.ColourToken).To(Equal("FFFFFF"))
		Expect(cmd.Name).NotTo(BeNil())
		Expect(*cmd.Name).To(Equal("My Role Name"))
	})

	It("leaves the name nil without name tokens", func() {
		cmd := commands.Parse("123 red")
		Expect(cmd.Name).To(BeNil())
	})

	It("normalises the role id", func() {
		Expect(commands.Parse("00123 red").RoleID).To(Equal("123"))
	})

	It("keeps the role id for a missing colour", func() {
		Expect(commands.Parse("987654321987654321").RoleID).To(Equal("987654321987654321"))
	})
})
