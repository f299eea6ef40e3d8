package schema

// FieldKind describes how a schema field is shaped.
type FieldKind int

const (
	// FieldModifier is a negatable constraint carrying one or more scalars.
	FieldModifier FieldKind = iota
	// FieldEnumModifier is a FieldModifier whose value is restricted to Enum.
	FieldEnumModifier
	// FieldBool is a plain boolean flag, default false.
	FieldBool
	// FieldInt is a plain integer, e.g. a port number.
	FieldInt
)

// FieldSpec declares one field of a category schema. Desc is the semantics
// line embedded verbatim in the extraction prompt.
type FieldSpec struct {
	Name string
	Kind FieldKind
	Desc string
	Enum []string
}

// CategorySchema is the full field set for one category, in declaration order.
type CategorySchema struct {
	Category Category
	Fields   []FieldSpec
}

// FileTypes is the closed value set for the FILE category's file_type field.
var FileTypes = []string{
	"executable", "document", "internet", "image", "audio", "video",
	"compressed", "apple", "mp3", "pdf", "docx", "svg", "html", "pcap",
}

var fileSchema = CategorySchema{
	Category: CategoryFile,
	Fields: []FieldSpec{
		{Name: "file_type", Kind: FieldEnumModifier, Desc: "File type (supports negation)", Enum: FileTypes},
		{Name: "min_file_size", Kind: FieldModifier, Desc: "Minimum file size in bytes"},
		{Name: "max_file_size", Kind: FieldModifier, Desc: "Maximum file size in bytes"},
		{Name: "positive_detections", Kind: FieldModifier, Desc: "Number of positive antivirus detections"},
		{Name: "antivirus_label", Kind: FieldModifier, Desc: "Antivirus label (supports negation)"},
		{Name: "behavior_report", Kind: FieldModifier, Desc: "Behavior report content (supports negation)"},
		{Name: "file_metadata", Kind: FieldModifier, Desc: "File metadata (supports negation)"},
		{Name: "file_signature", Kind: FieldModifier, Desc: "File signature (supports negation)"},
		{Name: "downloaded_from", Kind: FieldModifier, Desc: "Download source URL or domain (supports negation)"},
		{Name: "file_name", Kind: FieldModifier, Desc: "File name (supports negation)"},
		{Name: "tags", Kind: FieldModifier, Desc: "Tags associated with the file (supports negation)"},
		{Name: "last_seen_after", Kind: FieldModifier, Desc: "Last seen after date (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "last_seen_before", Kind: FieldModifier, Desc: "Last seen before date (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "first_submission_after", Kind: FieldModifier, Desc: "First submission datetime after"},
		{Name: "first_submission_before", Kind: FieldModifier, Desc: "First submission datetime before"},
		{Name: "last_analysis_after", Kind: FieldModifier, Desc: "Last analysis datetime after"},
		{Name: "last_analysis_before", Kind: FieldModifier, Desc: "Last analysis datetime before"},
		{Name: "children_positives", Kind: FieldModifier, Desc: "Maximum number of detections of children files"},
		{Name: "times_submitted", Kind: FieldModifier, Desc: "Times submitted"},
		{Name: "unique_sources", Kind: FieldModifier, Desc: "Number of unique submission sources"},
		{Name: "is_signed", Kind: FieldBool, Desc: "True if the file is signed"},
		{Name: "p2p_cnc", Kind: FieldBool, Desc: "True if the file exhibits P2P CnC communication"},
		{Name: "resolves_many_domains", Kind: FieldBool, Desc: "True if the file resolves many domains resulting in NXDOMAIN replies"},
		{Name: "communicates_with_dga", Kind: FieldBool, Desc: "True if the file communicates with DGA CnC domains"},
	},
}

var urlSchema = CategorySchema{
	Category: CategoryURL,
	Fields: []FieldSpec{
		{Name: "url_contains", Kind: FieldModifier, Desc: "Text contained in the URL"},
		{Name: "last_serving_ip", Kind: FieldModifier, Desc: "Last serving IP address"},
		{Name: "tld", Kind: FieldModifier, Desc: "Top-level domain"},
		{Name: "positive_detections", Kind: FieldModifier, Desc: "Number of positive detections, can include ranges like '8+', '20-'"},
		{Name: "hostname_contains", Kind: FieldModifier, Desc: "Hostname contains specific text"},
		{Name: "path_contains", Kind: FieldModifier, Desc: "Path contains specific text"},
		{Name: "query_value_contains", Kind: FieldModifier, Desc: "Query string value contains specific text"},
		{Name: "http_header_contains", Kind: FieldModifier, Desc: "HTTP header value contains specific text"},
		{Name: "antivirus_label", Kind: FieldModifier, Desc: "Antivirus label"},
		{Name: "title_contains", Kind: FieldModifier, Desc: "Page title contains specific text"},
		{Name: "categories_contains", Kind: FieldModifier, Desc: "Categories contain specific text"},
		{Name: "tags", Kind: FieldModifier, Desc: "Tags associated with the URL"},
		{Name: "last_seen_after", Kind: FieldModifier, Desc: "Last seen after (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "last_seen_before", Kind: FieldModifier, Desc: "Last seen before (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "first_seen_after", Kind: FieldModifier, Desc: "First seen after (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "first_seen_before", Kind: FieldModifier, Desc: "First seen before (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "last_analysis_after", Kind: FieldModifier, Desc: "Last analysis after (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "last_analysis_before", Kind: FieldModifier, Desc: "Last analysis before (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "main_icon_dhash", Kind: FieldModifier, Desc: "Favicon hash for visual similarity analysis"},
		{Name: "reputation", Kind: FieldModifier, Desc: "Reputation score, can include ranges like '70+', '-10'"},
		{Name: "times_submitted", Kind: FieldModifier, Desc: "Times submitted, can include ranges like '3', '4+', '10-'"},
		{Name: "submitter", Kind: FieldModifier, Desc: "Submitter source (API, web) or country (ISO alpha-2 code)"},
		{Name: "first_submitter", Kind: FieldModifier, Desc: "Country of first submitter (ISO alpha-2 code)"},
		{Name: "cookie", Kind: FieldModifier, Desc: "Cookie value in the HTTP response"},
		{Name: "cookie_value", Kind: FieldModifier, Desc: "Specific cookie key-value pair"},
		{Name: "http_header_key", Kind: FieldModifier, Desc: "HTTP response header key"},
		{Name: "http_header_value", Kind: FieldModifier, Desc: "HTTP response header value"},
		{Name: "password_protected", Kind: FieldBool, Desc: "True if the URL is password protected"},
		{Name: "exact_path", Kind: FieldModifier, Desc: "Exact URL path"},
		{Name: "extension", Kind: FieldModifier, Desc: "File extension associated with the URL"},
		{Name: "port", Kind: FieldInt, Desc: "Port number of the HTTP server"},
		{Name: "redirects_to", Kind: FieldModifier, Desc: "URL the page redirects to"},
		{Name: "response_code", Kind: FieldModifier, Desc: "HTTP response code"},
		{Name: "response_positives", Kind: FieldModifier, Desc: "Number of antivirus detections on the response content"},
		{Name: "response_size", Kind: FieldModifier, Desc: "Size of the returned content, in bytes"},
		{Name: "tracker", Kind: FieldModifier, Desc: "Analytics tracker used in the URL"},
		{Name: "parent_domain", Kind: FieldModifier, Desc: "Parent domain of the URL"},
		{Name: "threat_actor", Kind: FieldModifier, Desc: "Threat actor associated with the URL"},
	},
}

var domainSchema = CategorySchema{
	Category: CategoryDomain,
	Fields: []FieldSpec{
		{Name: "domain_contains", Kind: FieldModifier, Desc: "Domain contains specific text"},
		{Name: "domain_depth", Kind: FieldModifier, Desc: "Number of domain levels, can include ranges"},
		{Name: "tld", Kind: FieldModifier, Desc: "Top-level domain"},
		{Name: "categories_contains", Kind: FieldModifier, Desc: "Categories contain specific text"},
		{Name: "positive_detections", Kind: FieldModifier, Desc: "Number of positive detections, can include ranges like '8+', '20-'"},
		{Name: "antivirus_label", Kind: FieldModifier, Desc: "Antivirus label"},
		{Name: "popularity_rank", Kind: FieldModifier, Desc: "Popularity index rank, can include ranges like '8+', '20-'"},
		{Name: "whois_contains", Kind: FieldModifier, Desc: "WHOIS data contains specific text"},
		{Name: "tags", Kind: FieldModifier, Desc: "Tags associated with the domain"},
		{Name: "resolution_ttl", Kind: FieldModifier, Desc: "TTL value for resolution, can include ranges like '8+', '20-'"},
		{Name: "txt_record_contains", Kind: FieldModifier, Desc: "TXT record contains specific text"},
		{Name: "creation_update_date_after", Kind: FieldModifier, Desc: "Creation or update date after (YYYY-MM-DDTHH:MM:SS)"},
		{Name: "has_detected_downloaded_files", Kind: FieldBool, Desc: "True if the domain has detected downloaded files"},
		{Name: "has_detected_urls", Kind: FieldBool, Desc: "True if the domain has detected URLs"},
		{Name: "has_detected_communicating_files", Kind: FieldBool, Desc: "True if the domain has detected communicating files"},
		{Name: "has_detected_files_referring", Kind: FieldBool, Desc: "True if the domain has detected referring files"},
	},
}

var ipSchema = CategorySchema{
	Category: CategoryIP,
	Fields: []FieldSpec{
		{Name: "ip_cidr_range", Kind: FieldModifier, Desc: "IP CIDR range"},
		{Name: "autonomous_system_number", Kind: FieldModifier, Desc: "Autonomous system number (ASN)"},
		{Name: "autonomous_system_owner", Kind: FieldModifier, Desc: "Autonomous system owner (ASO)"},
		{Name: "country", Kind: FieldModifier, Desc: "Country associated with the IP (ISO alpha-2 code)"},
		{Name: "continent", Kind: FieldModifier, Desc: "Continent associated with the IP (ISO alpha-2 code)"},
		{Name: "comment", Kind: FieldModifier, Desc: "Community comment text"},
		{Name: "comment_author", Kind: FieldModifier, Desc: "Community comment author"},
		{Name: "positive_detections", Kind: FieldModifier, Desc: "Number of positive detections, can include ranges like '20+', '31-'"},
		{Name: "antivirus_label", Kind: FieldModifier, Desc: "Antivirus label"},
		{Name: "reputation", Kind: FieldModifier, Desc: "Reputation score, can include ranges like '-20', '-50'"},
		{Name: "domain_resolutions_count", Kind: FieldModifier, Desc: "Domain resolution count, can include ranges like '10+', '50-'"},
		{Name: "detected_communicating_files_count", Kind: FieldModifier, Desc: "Number of detected communicating files, can include ranges"},
		{Name: "communicating_files_max_detections", Kind: FieldModifier, Desc: "Max detections for communicating files"},
		{Name: "detected_downloaded_files_count", Kind: FieldModifier, Desc: "Number of detected downloaded files, can include ranges"},
		{Name: "downloaded_files_max_detections", Kind: FieldModifier, Desc: "Max detections for downloaded files"},
		{Name: "detected_referring_files_count", Kind: FieldModifier, Desc: "Number of detected referring files, can include ranges"},
		{Name: "referring_files_max_detections", Kind: FieldModifier, Desc: "Max detections for referring files"},
		{Name: "detected_urls_count", Kind: FieldModifier, Desc: "Number of detected URLs, can include ranges"},
		{Name: "urls_max_detections", Kind: FieldModifier, Desc: "Max detections for hosted URLs"},
		{Name: "ssl_issuer", Kind: FieldModifier, Desc: "SSL certificate issuer"},
		{Name: "ssl_serial", Kind: FieldModifier, Desc: "SSL certificate serial number"},
		{Name: "ssl_subject", Kind: FieldModifier, Desc: "SSL certificate subject"},
		{Name: "ssl_thumbprint", Kind: FieldModifier, Desc: "SSL certificate thumbprint"},
		{Name: "whois_contains", Kind: FieldModifier, Desc: "WHOIS data contains specific text"},
		{Name: "last_modification_date", Kind: FieldModifier, Desc: "Last modification date, can include ranges"},
		{Name: "jarm", Kind: FieldModifier, Desc: "JARM fingerprint"},
		{Name: "ssl_not_before", Kind: FieldModifier, Desc: "SSL certificate start validity date"},
		{Name: "ssl_not_after", Kind: FieldModifier, Desc: "SSL certificate end validity date"},
		{Name: "threat_actor", Kind: FieldModifier, Desc: "Threat actor associated with the IP"},
		{Name: "has_detected_downloaded_files", Kind: FieldBool, Desc: "True if the IP has detected downloaded files"},
		{Name: "has_detected_urls", Kind: FieldBool, Desc: "True if the IP has detected URLs"},
		{Name: "has_detected_communicating_files", Kind: FieldBool, Desc: "True if the IP has detected communicating files"},
		{Name: "has_detected_files_referring", Kind: FieldBool, Desc: "True if the IP has detected referring files"},
	},
}
