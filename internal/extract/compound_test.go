package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	testCases := []struct {
		value          string
		expectedBefore string
		expectedAfter  string
	}{
		{"FwVer:1.2.3 HwVer:A1", "1.2.3", "A1"},
		{"1.2.3 HwVer:A1", "1.2.3", "A1"},
		{"FwVer:1.2.3", "1.2.3", ""},
		{"FwVer:3.22.9.0_A2pv6F039t1 HwVer:T14.F7_5.0 HwVer:x", "3.22.9.0_A2pv6F039t1", "T14.F7_5.0 HwVer:x"},
	}

	for _, test := range testCases {
		before, after := Decompose(test.value, "FwVer:", " HwVer:")
		require.Equal(t, test.expectedBefore, before, test.value)
		require.Equal(t, test.expectedAfter, after, test.value)
	}
}
