// Package services identifies well-known services by port and assigns a
// risk tier that drives the kill confirmation policy.
package services

// RiskLevel classifies how dangerous terminating a service is.
type RiskLevel int

const (
	// Low risk: development and test services.
	Low RiskLevel = iota
	// Medium risk: may affect local applications.
	Medium
	// High risk: stores and brokers; expect disruption.
	High
	// Critical: system and database services; never kill casually.
	Critical
)

func (r RiskLevel) String() string {
	switch r {
	case Low:
		return "Low Risk"
	case Medium:
		return "Medium Risk"
	case High:
		return "High Risk"
	case Critical:
		return "CRITICAL"
	default:
		return "Unknown"
	}
}

// ServiceInfo describes one well-known service.
type ServiceInfo struct {
	Port         uint16
	Name         string
	Description  string
	Risk         RiskLevel
	ProcessHints []string
}

// knownServices is domain knowledge, not derived at runtime. Read-only
// for the process lifetime.
var knownServices = []ServiceInfo{
	// Web servers
	{80, "HTTP", "Web server (Apache, Nginx, IIS)", Medium, []string{"nginx", "apache", "httpd", "iis"}},
	{443, "HTTPS", "Secure web server", Medium, []string{"nginx", "apache", "httpd", "iis"}},
	{8080, "HTTP Alt", "Alternative HTTP / Development server", Low, []string{"java", "node", "python"}},
	{8443, "HTTPS Alt", "Alternative HTTPS", Low, []string{"java", "node"}},

	// Databases
	{3306, "MySQL", "MySQL/MariaDB database server", Critical, []string{"mysqld", "mariadbd", "mysql"}},
	{5432, "PostgreSQL", "PostgreSQL database server", Critical, []string{"postgres", "postgresql"}},
	{27017, "MongoDB", "MongoDB database server", Critical, []string{"mongod", "mongodb"}},
	{6379, "Redis", "Redis in-memory data store", High, []string{"redis-server", "redis"}},
	{9200, "Elasticsearch", "Elasticsearch search engine", High, []string{"elasticsearch", "java"}},
	{1433, "MSSQL", "Microsoft SQL Server", Critical, []string{"sqlservr", "mssql"}},
	{1521, "Oracle", "Oracle Database", Critical, []string{"oracle", "tnslsnr"}},
	{5984, "CouchDB", "Apache CouchDB", High, []string{"couchdb", "beam"}},
	{7474, "Neo4j", "Neo4j Graph Database", High, []string{"neo4j", "java"}},

	// Message queues
	{5672, "RabbitMQ", "RabbitMQ message broker", High, []string{"rabbitmq", "beam", "erlang"}},
	{9092, "Kafka", "Apache Kafka message broker", High, []string{"kafka", "java"}},
	{4222, "NATS", "NATS message broker", Medium, []string{"nats-server", "nats"}},

	// Development tools
	{3000, "Dev Server", "Node.js / React / Rails dev server", Low, []string{"node", "ruby", "rails"}},
	{4200, "Angular", "Angular development server", Low, []string{"node", "ng"}},
	{5000, "Flask/ASP.NET", "Flask or ASP.NET development server", Low, []string{"python", "flask", "dotnet"}},
	{5173, "Vite", "Vite development server", Low, []string{"node", "vite"}},
	{8000, "Django/PHP", "Django or PHP development server", Low, []string{"python", "django", "php"}},
	{9000, "PHP-FPM", "PHP FastCGI Process Manager", Medium, []string{"php-fpm", "php"}},

	// Container & orchestration
	{2375, "Docker", "Docker daemon (unencrypted)", Critical, []string{"dockerd", "docker"}},
	{2376, "Docker TLS", "Docker daemon (TLS)", Critical, []string{"dockerd", "docker"}},
	{6443, "Kubernetes", "Kubernetes API server", Critical, []string{"kube-apiserver", "k8s"}},
	{10250, "Kubelet", "Kubernetes Kubelet", Critical, []string{"kubelet"}},

	// System services
	{22, "SSH", "Secure Shell server", Critical, []string{"sshd", "ssh"}},
	{21, "FTP", "FTP server", Medium, []string{"vsftpd", "proftpd", "ftpd"}},
	{23, "Telnet", "Telnet server (insecure)", Medium, []string{"telnetd"}},
	{25, "SMTP", "Email server (SMTP)", High, []string{"postfix", "sendmail", "exim"}},
	{53, "DNS", "Domain Name System", Critical, []string{"named", "bind", "dnsmasq"}},
	{67, "DHCP", "DHCP server", Critical, []string{"dhcpd", "dnsmasq"}},
	{123, "NTP", "Network Time Protocol", High, []string{"ntpd", "chronyd"}},
	{135, "RPC", "Windows RPC Endpoint Mapper", Critical, []string{"svchost"}},
	{139, "NetBIOS", "Windows NetBIOS Session", High, []string{"smbd", "svchost"}},
	{445, "SMB", "Windows File Sharing (SMB)", Critical, []string{"smbd", "svchost", "System"}},
	{3389, "RDP", "Windows Remote Desktop", Critical, []string{"svchost", "TermService"}},

	// Monitoring & observability
	{9090, "Prometheus", "Prometheus monitoring", Medium, []string{"prometheus"}},
	{3100, "Loki", "Grafana Loki log aggregation", Medium, []string{"loki"}},
	{3001, "Grafana", "Grafana dashboard (alt port)", Medium, []string{"grafana"}},
	{9093, "Alertmanager", "Prometheus Alertmanager", Medium, []string{"alertmanager"}},
	{16686, "Jaeger", "Jaeger tracing UI", Low, []string{"jaeger"}},

	// AI/ML
	{11434, "Ollama", "Ollama LLM server", Low, []string{"ollama"}},
	{1234, "LM Studio", "LM Studio local LLM", Low, []string{"lm studio", "lmstudio"}},
	{8888, "Jupyter", "Jupyter Notebook server", Low, []string{"jupyter", "python"}},

	// Caching
	{11211, "Memcached", "Memcached cache server", High, []string{"memcached"}},

	// Version control
	{9418, "Git", "Git protocol daemon", Medium, []string{"git-daemon"}},

	// Proxy
	{8888, "Proxy", "HTTP Proxy server", Medium, []string{"squid", "privoxy"}},
	{1080, "SOCKS", "SOCKS proxy", Medium, []string{"socks", "dante"}},
}

// Lookup returns the known service on port, or nil. Linear scan over a
// ~50 entry table.
func Lookup(port uint16) *ServiceInfo {
	for i := range knownServices {
		if knownServices[i].Port == port {
			return &knownServices[i]
		}
	}
	return nil
}

// All returns the full service table.
func All() []ServiceInfo {
	return knownServices
}

// RequiresConfirmation reports whether killing the service on port
// should demand explicit confirmation: true iff the matched tier is
// High or Critical.
func RequiresConfirmation(port uint16) bool {
	s := Lookup(port)
	return s != nil && (s.Risk == High || s.Risk == Critical)
}

// ShortName returns the service name for display, or "" when unknown.
func ShortName(port uint16) string {
	if s := Lookup(port); s != nil {
		return s.Name
	}
	return ""
}
