package sky

import "testing"

func TestPhaseProgression(t *testing.T) {
	c := New(42, 100)
	if c.Phase() != PhaseDawn {
		t.Fatalf("clock starts in %s, want dawn", PhaseName(c.Phase()))
	}
	c.Advance(25) // into the day plateau
	if c.Phase() != PhaseDay {
		t.Fatalf("phase after dawn = %s, want day", PhaseName(c.Phase()))
	}
	c.Advance(55) // 0.25+0.80 = wrapped into night
	if c.Phase() != PhaseNight {
		t.Fatalf("phase = %s, want night", PhaseName(c.Phase()))
	}
}

func TestAmbientLightBounds(t *testing.T) {
	c := New(1, 60)
	for i := 0; i < 600; i++ {
		c.Advance(0.5)
		l := c.AmbientLight()
		if l < nightLight || l > dayLight {
			t.Fatalf("ambient light %.3f outside [%.2f, %.2f]", l, nightLight, dayLight)
		}
	}
}

func TestCloudCoverBoundsAndDrift(t *testing.T) {
	c := New(7, 600)
	before := c.CloudCover(100, 100)
	if before < 0 || before > 1 {
		t.Fatalf("cloud cover %.3f outside [0,1]", before)
	}
	c.Advance(120)
	after := c.CloudCover(100, 100)
	if before == after {
		t.Error("cloud field did not drift over two minutes")
	}
}

func TestCycleWraps(t *testing.T) {
	c := New(9, 50)
	c.Advance(50 * 3.5)
	tod := c.TimeOfDay()
	if tod < 0 || tod >= 1 {
		t.Fatalf("TimeOfDay = %.3f, want [0,1)", tod)
	}
}
