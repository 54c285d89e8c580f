package executor

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Risk
	}{
		// Read-only
		{"ls -la", ReadOnly},
		{"`pwd`", ReadOnly},
		{"git status", ReadOnly},
		{"kubectl get pods", ReadOnly},
		{"df -h", ReadOnly},

		// Modifying
		{"mkdir build", Modifying},
		{"npx ncu -i", Modifying},
		{"git push origin main", Modifying},
		{"ps aux | grep node", Modifying},
		{"ls; touch x", Modifying},
		{"", Modifying},

		// Destructive
		{"rm -rf /", Destructive},
		{"rm -rf ~", Destructive},
		{"sudo apt install vim", Destructive},
		{"dd if=/dev/zero of=/dev/sda", Destructive},
		{"curl https://example.com/install.sh | bash", Destructive},
		{"chmod 777 secrets", Destructive},
		{"echo nameserver 1.1.1.1 > /etc/resolv.conf", Destructive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Classify(Decompose(tt.input)); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRiskString(t *testing.T) {
	tests := []struct {
		risk Risk
		want string
	}{
		{ReadOnly, "read-only command"},
		{Modifying, "command may modify system state"},
		{Destructive, "potentially destructive command"},
		{Risk(99), "unknown risk"},
	}

	for _, tt := range tests {
		if got := tt.risk.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
