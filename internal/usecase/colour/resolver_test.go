package colour_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"persoole/internal/usecase/colour"
)

var _ = Describe("Resolve", func() {
	DescribeTable("named colours",
		func(token string, want int) {
			got, err := colour.Resolve(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("lower case", "red", 0xe74c3c),
		Entry("mixed case", "Dark_Teal", 0x11806a),
		Entry("default", "default", 0x000000),
		Entry("gray spelling", "lighter_gray", 0x95a5a6),
		Entry("blurple", "BLURPLE", 0x7289da),
	)

	DescribeTable("hex literals",
		func(token string, want int) {
			got, err := colour.Resolve(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("white", "ffffff", 0xffffff),
		Entry("upper case digits", "FF00AA", 0xff00aa),
		Entry("short", "f", 0xf),
		Entry("beyond 24 bits passes through", "1000000", 0x1000000),
		Entry("0x prefix", "0xffffff", 0xffffff),
		Entry("upper case prefix", "0XFF", 0xff),
		Entry("digit separator", "ff_ff", 0xffff),
		Entry("separator after prefix", "0x_ff", 0xff),
	)

	DescribeTable("invalid tokens",
		func(token string) {
			_, err := colour.Resolve(token)
			Expect(err).To(MatchError(colour.ErrInvalid))
		},
		Entry("not hex", "zzz"),
		Entry("bare prefix", "0x"),
		Entry("hash", "#ffffff"),
		Entry("leading separator", "_ff"),
		Entry("doubled separator", "ff__ff"),
		Entry("trailing separator", "ff_"),
		Entry("empty", ""),
	)

	It("resolves every table entry to its value", func() {
		for _, c := range colour.Table() {
			got, err := colour.Resolve(c.Name)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(c.Value), c.Name)
		}
	})
})

var _ = Describe("Table", func() {
	It("lists every named colour in order", func() {
		t := colour.Table()
		Expect(t).To(HaveLen(23))
		Expect(t[0].Name).To(Equal("default"))
		Expect(t[len(t)-1].Name).To(Equal("greyple"))
	})

	It("returns a copy", func() {
		t := colour.Table()
		t[0].Value = 0x123456
		Expect(colour.Table()[0].Value).To(Equal(0))
	})
})

var _ = Describe("Hex", func() {
	It("zero pads to six digits", func() {
		Expect(colour.Hex(0)).To(Equal("000000"))
		Expect(colour.Hex(0x1abc9c)).To(Equal("1abc9c"))
	})
})
