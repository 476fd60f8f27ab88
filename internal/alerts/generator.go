package alerts

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/xela07ax/snortview/internal/domain"
)

// samplePayload — base64 полезной нагрузки DNS-ответа, общий для всех синтетических алертов
const samplePayload = "vt+FgAABAAEAAAAAEEFUQlIyTU9OSVVTSlBWWDEDd3d3B3VzanRyZWUDY29tAmJyAAABAAHADAABAAEAAA4QAASsGQB9"

var classes = []string{
	"Potential Corporate Privacy Violation",
	"Attempted Information Leak",
	"Web Application Attack",
	"Attempted Denial of Service",
	"Attempted User Privilege Gain",
	"Executable Code was Detected",
	"A Network Trojan was Detected",
	"Potentially Bad Traffic",
}

var messages = []string{
	"PROTOCOL-DNS dns response for rfc1918 address detected",
	"INDICATOR-SCAN DNS version.bind string information disclosure attempt",
	"SERVER-APACHE Apache Struts remote code execution attempt",
	"MALWARE-CNC Win.Trojan.ZeroAccess outbound connection",
	"INDICATOR-OBFUSCATION JSFuck JavaScript obfuscation detected",
	"SERVER-WEBAPP Jenkins remote code execution attempt",
	"MALWARE-CNC Andr.Trojan.Dharma ransomware outbound connection attempt",
	"PROTOCOL-ICMP destination unreachable communication administratively prohibited",
	"OS-WINDOWS Microsoft Windows SMB remote code execution attempt",
}

// Окно дат синтетического набора: 2025-04-01 плюс [0, generationDays) дней
var generationStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

const generationDays = 49

// Generate строит n синтетических алертов. Один и тот же seed всегда дает один и тот же набор.
func Generate(n int, seed uint64) []domain.Alert {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed5eed5eed5eed))

	out := make([]domain.Alert, 0, n)
	for i := 0; i < n; i++ {
		at := generationStart.
			AddDate(0, 0, rng.IntN(generationDays)).
			Add(time.Duration(rng.IntN(24)) * time.Hour).
			Add(time.Duration(rng.IntN(60)) * time.Minute).
			Add(time.Duration(rng.IntN(60)) * time.Second).
			Add(time.Duration(rng.IntN(1_000_000)) * time.Microsecond)

		out = append(out, domain.Alert{
			ID:          i + 1,
			Timestamp:   at.Format("01/02-15:04:05.000000"),
			Iface:       rng.IntN(10),
			SrcAddr:     randomIPv4(rng),
			SrcPort:     rng.IntN(65535),
			DstAddr:     randomIPv4(rng),
			DstPort:     rng.IntN(65535),
			Proto:       pick(rng, domain.Protocols),
			Action:      pick(rng, domain.Actions),
			Msg:         pick(rng, messages),
			Priority:    rng.IntN(3) + 1,
			Class:       pick(rng, classes),
			SID:         rng.IntN(100000),
			Rule:        fmt.Sprintf("1:%d:%d", rng.IntN(100000), rng.IntN(20)),
			B64Data:     samplePayload,
			Datetime:    fmt.Sprintf("%s:%06d", at.Format("02/01/2006 15:04:05"), at.Nanosecond()/1000),
			DatetimeFix: at.Format(domain.DatetimeFixLayout),
			At:          at,
		})
	}
	return out
}

// randomIPv4 — первый октет 1..223, чтобы не попадать в multicast/reserved
func randomIPv4(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", rng.IntN(223)+1, rng.IntN(255), rng.IntN(255), rng.IntN(255))
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}
