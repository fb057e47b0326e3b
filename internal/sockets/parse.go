package sockets

import (
	"regexp"
	"strconv"
	"strings"

	"portreap/internal/model"
)

// ss -H -tlnp
// LISTEN 0 4096 127.0.0.1:5432 0.0.0.0:* users:(("postgres",pid=8123,fd=7))
// ss -H -lunp
// UNCONN 0 0 0.0.0.0:68 0.0.0.0:* users:(("dhclient",pid=612,fd=6))
var (
	reSS       = regexp.MustCompile(`^(?P<state>\S+)\s+\d+\s+\d+\s+(?P<laddr>\S+)\s+(?P<raddr>\S+)\s*(?P<users>users:\(\(.*\)\))?$`)
	reUsersPid = regexp.MustCompile(`pid=(\d+)`)
)

// lsof -nP -iTCP -sTCP:LISTEN
// node  1234 me  23u IPv4 0x0 0t0 TCP *:3000 (LISTEN)
// lsof -nP -iUDP
// mDNSResp  345 _mdns  8u IPv4 0x0 0t0 UDP *:5353
var (
	reLsofTCP = regexp.MustCompile(`^(?P<cmd>\S+)\s+(?P<pid>\d+)\s+(?P<user>\S+)\s+.*\sTCP\s+(?P<addr>\S+)\s+\((?P<state>[^)]+)\)\s*$`)
	reLsofUDP = regexp.MustCompile(`^(?P<cmd>\S+)\s+(?P<pid>\d+)\s+(?P<user>\S+)\s+.*\sUDP\s+(?P<addr>\S+)\s*$`)
)

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// splitHostPort splits "ip:port", "[ip]:port" and "*:port" address forms.
// A string with no parseable trailing port yields port 0 and the caller
// skips the row.
func splitHostPort(addr string) (string, int) {
	addr = strings.TrimSpace(addr)

	if strings.HasPrefix(addr, "[") {
		i := strings.LastIndex(addr, "]:")
		if i > 0 {
			return addr[1:i], parseInt(addr[i+2:])
		}
	}
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return addr, 0
	}
	ip := strings.TrimSuffix(strings.TrimPrefix(addr[:i], "["), "]")
	return ip, parseInt(addr[i+1:])
}

// extractPID pulls the trailing pid=N annotation out of free text such as
// ss users:(("node",pid=12345,fd=21)). Returns 0 when absent.
func extractPID(s string) int32 {
	m := reUsersPid.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return int32(parseInt(m[1]))
}

func splitLines(b []byte) []string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// parseSS converts ss listener output into connection records. Rows that
// fail to parse are skipped; enumeration is best effort.
func parseSS(out []byte, proto string) []model.Conn {
	var conns []model.Conn
	for _, line := range splitLines(out) {
		m := reSS.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		ip, port := splitHostPort(m[reSS.SubexpIndex("laddr")])
		if port <= 0 || port > 65535 {
			continue
		}
		state := strings.ToUpper(m[reSS.SubexpIndex("state")])
		if proto == "UDP" {
			state = "*"
		}
		conns = append(conns, model.Conn{
			Protocol:  proto,
			LocalAddr: ip,
			LocalPort: port,
			State:     state,
			PID:       extractPID(m[reSS.SubexpIndex("users")]),
		})
	}
	return conns
}

// parseLsof converts lsof -nP -i output into connection records.
func parseLsof(out []byte, proto string) []model.Conn {
	re := reLsofTCP
	if proto == "UDP" {
		re = reLsofUDP
	}
	var conns []model.Conn
	for _, line := range splitLines(out) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "COMMAND") {
			continue
		}
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addr := m[re.SubexpIndex("addr")]
		if i := strings.Index(addr, "->"); i >= 0 {
			addr = addr[:i]
		}
		ip, port := splitHostPort(addr)
		if port <= 0 || port > 65535 {
			continue
		}
		state := "*"
		if proto == "TCP" {
			state = strings.ToUpper(strings.TrimSpace(m[re.SubexpIndex("state")]))
			if state != "LISTEN" {
				continue
			}
		}
		conns = append(conns, model.Conn{
			Protocol:  proto,
			LocalAddr: ip,
			LocalPort: port,
			State:     state,
			PID:       int32(parseInt(m[re.SubexpIndex("pid")])),
		})
	}
	return conns
}

// parseNetstat converts Windows netstat -ano output into connection
// records. TCP rows carry a state column and a remote address; UDP rows
// do not. The PID is the last whitespace-separated token.
func parseNetstat(out []byte, proto string) []model.Conn {
	var conns []model.Conn
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.EqualFold(fields[0], proto) {
			continue
		}
		ip, port := splitHostPort(fields[1])
		if port <= 0 || port > 65535 {
			continue
		}
		c := model.Conn{
			Protocol:  strings.ToUpper(proto),
			LocalAddr: ip,
			LocalPort: port,
			State:     "*",
			PID:       int32(parseInt(fields[len(fields)-1])),
		}
		if strings.EqualFold(proto, "tcp") {
			if len(fields) < 5 {
				continue
			}
			c.State = fields[3]
			if c.State != "LISTENING" {
				continue
			}
			if rip, rp := splitHostPort(fields[2]); rp > 0 {
				c.RemoteAddr = rip
				c.RemotePort = rp
			}
		}
		conns = append(conns, c)
	}
	return conns
}
