package capability

import (
	"errors"
	"testing"

	"github.com/pthm-cable/silk/config"
)

type fakeEnv struct {
	surface bool
	cpus    int
	network string
	panics  bool
}

func (f fakeEnv) SurfaceAvailable() bool {
	if f.panics {
		panic("surface probe")
	}
	return f.surface
}

func (f fakeEnv) CPUConcurrency() int {
	if f.panics {
		panic("cpu probe")
	}
	return f.cpus
}

func (f fakeEnv) NetworkClass() string {
	if f.panics {
		panic("network probe")
	}
	return f.network
}

func defaultFallback() config.FallbackConfig {
	return config.FallbackConfig{
		Policy:       PolicyHeuristic,
		LowPowerCPUs: 4,
		SlowNetworks: []string{"slow-2g", "2g"},
	}
}

func TestHeuristicPolicy(t *testing.T) {
	p, err := PolicyByName(PolicyHeuristic, defaultFallback())
	if err != nil {
		t.Fatalf("PolicyByName: %v", err)
	}

	tests := []struct {
		name string
		env  fakeEnv
		want bool
	}{
		{"capable", fakeEnv{surface: true, cpus: 8, network: "4g"}, false},
		{"four cores", fakeEnv{surface: true, cpus: 4, network: "4g"}, true},
		{"unknown cores", fakeEnv{surface: true, cpus: 0}, false},
		{"slow network", fakeEnv{surface: true, cpus: 8, network: "2g"}, true},
		{"slowest network", fakeEnv{surface: true, cpus: 8, network: "slow-2g"}, true},
		{"unknown network", fakeEnv{surface: true, cpus: 8}, false},
		{"no surface", fakeEnv{surface: false, cpus: 16}, true},
		{"probes panic", fakeEnv{panics: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Evaluator{Env: tt.env, Policy: p}
			if got := e.Decide(); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSurfaceOnlyPolicy(t *testing.T) {
	p, err := PolicyByName(PolicySurfaceOnly, defaultFallback())
	if err != nil {
		t.Fatalf("PolicyByName: %v", err)
	}
	if p.ShouldFallback(Signals{Surface: true, CPUs: 2, NetworkClass: "2g"}) {
		t.Error("surface-only policy fell back with a surface present")
	}
	if !p.ShouldFallback(Signals{}) {
		t.Error("surface-only policy kept animating without a surface")
	}
}

func TestPolicyByNameUnknown(t *testing.T) {
	_, err := PolicyByName("battery", defaultFallback())
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("PolicyByName(battery) error = %v, want ErrUnknownPolicy", err)
	}
}

func TestProbeRecoversPanics(t *testing.T) {
	s := Probe(fakeEnv{panics: true, surface: true, cpus: 8, network: "4g"})
	if s != (Signals{}) {
		t.Errorf("Probe = %+v, want zero signals", s)
	}
	if Probe(nil) != (Signals{}) {
		t.Error("Probe(nil) should report no signals")
	}
}

func TestDecideIsPure(t *testing.T) {
	e, err := NewEvaluator(fakeEnv{surface: true, cpus: 8}, defaultFallback())
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	first := e.Decide()
	for i := 0; i < 5; i++ {
		if e.Decide() != first {
			t.Fatal("repeated Decide changed result")
		}
	}
}

func TestSystemEnvironmentNetworkOverride(t *testing.T) {
	t.Setenv(NetworkClassEnv, "SLOW-2G")

	env := SystemEnvironment{}
	if got := env.NetworkClass(); got != "slow-2g" {
		t.Errorf("NetworkClass() = %q, want slow-2g", got)
	}
	env.Network = "4g"
	if got := env.NetworkClass(); got != "4g" {
		t.Errorf("NetworkClass() = %q, want 4g", got)
	}
	if env.SurfaceAvailable() {
		t.Error("nil surface probe should report unavailable")
	}
	if env.CPUConcurrency() < 1 {
		t.Error("expected at least one CPU")
	}
}
