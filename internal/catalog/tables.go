package catalog

// Product rows are kept only when both their service category and content
// type are in these allow-lists.
var (
	includedServiceCategories = map[string]bool{
		"network": true, "cloud": true, "security": true,
		"ai": true, "hosting": true, "edge": true,
	}
	includedContentTypes = map[string]bool{
		"service-page": true, "service": true, "solution": true,
		"use-case": true, "marketplace": true,
	}
)

// Priority assigned to product pages whose URL contains a flagship prefix.
var flagshipPrefixes = []string{"/cdn", "/cloud", "/ddos"}

const (
	flagshipPriority = 5
	productPriority  = 4
	learningPriority = 3

	defaultServiceTitle = "Gcore Service"
	learningPathPrefix  = "/learning/"
)

type keywordRule struct {
	pattern  string
	keywords []string
}

// productKeywordRules associates URL fragments with keyword lists. The first
// rule whose pattern occurs in the URL wins.
var productKeywordRules = []keywordRule{
	{"/cdn", []string{"cdn", "content delivery", "content distribution", "cache", "caching", "performance"}},
	{"/cloud", []string{"cloud", "cloud computing", "virtual machine", "vm", "instance", "kubernetes", "k8s"}},
	{"/ddos-protection", []string{"ddos", "ddos protection", "ddos attack", "security", "mitigation"}},
	{"/dns", []string{"dns", "domain name system", "nameserver", "dns resolution", "dns hosting"}},
	{"/hosting", []string{"hosting", "dedicated server", "bare metal", "vps", "vds", "server"}},
	{"/edge-network", []string{"edge", "edge network", "edge computing", "low latency", "global network"}},
	{"/ai", []string{"ai", "artificial intelligence", "machine learning", "ml", "gpu", "inference"}},
	{"/streaming", []string{"streaming", "live streaming", "video streaming", "broadcast", "hls", "dash"}},
	{"/storage", []string{"storage", "object storage", "s3", "backup", "data storage"}},
	{"/fastedge", []string{"fastedge", "edge application", "wasm", "webassembly", "serverless edge"}},
}

// learningSubcategoryRules classify a learning slug; first match wins and
// unmatched slugs fall into "general".
var learningSubcategoryRules = []keywordRule{
	{"tutorial", []string{"configure", "setup", "install", "deploy", "build", "create"}},
	{"concept", []string{"what-is", "explained", "overview", "introduction", "guide"}},
	{"troubleshooting", []string{"error", "fix", "troubleshoot", "solve", "debug"}},
	{"best-practices", []string{"best", "optimize", "improve", "enhance", "security"}},
	{"comparison", []string{"vs", "versus", "compare", "difference"}},
}

type topicExpansion struct {
	triggers []string
	adds     []string
}

// learningTopicExpansions add relevance keywords to learning entries whose
// slug mentions any trigger. Every matching expansion applies.
var learningTopicExpansions = []topicExpansion{
	{[]string{"cdn"}, []string{"cdn", "content delivery", "caching"}},
	{[]string{"kubernetes", "k8s"}, []string{"kubernetes", "k8s", "container", "orchestration"}},
	{[]string{"docker"}, []string{"docker", "container", "containerization"}},
	{[]string{"security", "ddos"}, []string{"security", "protection", "attack", "defense"}},
	{[]string{"streaming", "video"}, []string{"streaming", "video", "media", "broadcast"}},
}
