package harness

import (
	"testing"
)

func TestRunWithGolden_Floats(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/floats.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RunWithGolden(t, sc); err != nil {
		t.Fatal(err)
	}
}
