package toon

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyToken(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc  string
		token string
		want  Value
	}{
		{desc: "Null", token: "null", want: Null},
		{desc: "True", token: "true", want: Bool(true)},
		{desc: "False", token: "false", want: Bool(false)},
		{desc: "Zero", token: "0", want: IntFromInt64(0)},
		{desc: "PositiveInt", token: "42", want: IntFromInt64(42)},
		{desc: "NegativeInt", token: "-7", want: IntFromInt64(-7)},
		{desc: "Float", token: "1.5", want: Float(1.5)},
		{desc: "Exponent", token: "1e10", want: Float(1e10)},
		{desc: "LeadingZeroIsString", token: "007", want: String("007")},
		{desc: "PlainString", token: "hello", want: String("hello")},
		{desc: "LargeInteger", token: "99999999999999999999999999999999", want: Int(bigFromString(t, "99999999999999999999999999999999"))},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got := classifyToken(tc.token)
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(Value{}), bigIntComparer); diff != "" {
				t.Errorf("classifyToken(%q) returned unexpected diff (-want +got):\n%s", tc.token, diff)
			}
		})
	}
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid big int literal %q", s)
	}
	return i
}

// bigIntComparer compares the *big.Int inside Int Values by numeric value;
// cmp.AllowUnexported does not reach into big.Int's own unexported fields.
var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.Cmp(y) == 0
})

func TestFormatFloatNeverUsesScientificNotation(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		f    float64
		want string
	}{
		{desc: "Zero", f: 0, want: "0"},
		{desc: "Small", f: 0.0001, want: "0.0001"},
		{desc: "Large", f: 123456789012345.0, want: "123456789012345"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			if got := formatFloat(tc.f); got != tc.want {
				t.Errorf("formatFloat(%v) = %q, want %q", tc.f, got, tc.want)
			}
		})
	}
}
