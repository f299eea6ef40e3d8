package schema

// MappingEntry maps one schema field to its platform key(s). More than one key
// means the compiler expands the field into a parenthesized OR group across
// all keys. A key containing ':' is a complete token already (e.g. the IP
// category's "detected_urls_count:1+") and is emitted verbatim for boolean
// fields.
type MappingEntry struct {
	Field string
	Keys  []string
}

// FieldMapping is the ordered field-to-key table for one category. Entry
// order is the compiler's emission order.
type FieldMapping struct {
	Category Category
	Entries  []MappingEntry
}

// Entry returns the mapping entry for a field name, if declared.
func (m *FieldMapping) Entry(field string) (MappingEntry, bool) {
	for _, e := range m.Entries {
		if e.Field == field {
			return e, true
		}
	}
	return MappingEntry{}, false
}

func one(field, key string) MappingEntry {
	return MappingEntry{Field: field, Keys: []string{key}}
}

var fileMapping = FieldMapping{
	Category: CategoryFile,
	Entries: []MappingEntry{
		one("file_type", "type"),
		one("min_file_size", "size"),
		one("max_file_size", "size"),
		one("positive_detections", "p"),
		one("antivirus_label", "engines"),
		one("behavior_report", "behavior"),
		one("file_metadata", "metadata"),
		one("file_signature", "signature"),
		one("downloaded_from", "itw"),
		one("file_name", "name"),
		one("tags", "tag"),
		one("last_seen_after", "ls"),
		one("last_seen_before", "ls"),
		one("first_submission_after", "fs"),
		one("first_submission_before", "fs"),
		one("last_analysis_after", "la"),
		one("last_analysis_before", "la"),
		one("children_positives", "cp"),
		one("times_submitted", "s"),
		one("unique_sources", "us"),
		one("is_signed", "signed"),
		one("p2p_cnc", "suspicious-udp"),
		one("resolves_many_domains", "nxdomain"),
		one("communicates_with_dga", "suspicious-dns"),
	},
}

var urlMapping = FieldMapping{
	Category: CategoryURL,
	Entries: []MappingEntry{
		one("url_contains", "url"),
		one("last_serving_ip", "ip"),
		one("tld", "tld"),
		one("positive_detections", "p"),
		one("hostname_contains", "hostname"),
		one("path_contains", "path"),
		one("query_value_contains", "query_value"),
		one("http_header_contains", "header"),
		one("antivirus_label", "engines"),
		one("title_contains", "title"),
		one("categories_contains", "category"),
		one("tags", "tag"),
		one("last_seen_after", "ls"),
		one("last_seen_before", "ls"),
		one("first_seen_after", "fs"),
		one("first_seen_before", "fs"),
		one("last_analysis_after", "la"),
		one("last_analysis_before", "la"),
		one("main_icon_dhash", "main_icon_dhash"),
		one("reputation", "reputation"),
		one("times_submitted", "s"),
		one("submitter", "submitter"),
		one("first_submitter", "first_submitter"),
		one("cookie", "cookie"),
		one("cookie_value", "cookie_value"),
		one("http_header_key", "header"),
		one("http_header_value", "header_value"),
		one("password_protected", "have:password"),
		one("exact_path", "exact_path"),
		one("extension", "extension"),
		one("port", "port"),
		one("redirects_to", "redirects_to"),
		one("response_code", "response_code"),
		one("response_positives", "response_positives"),
		one("response_size", "response_size"),
		one("tracker", "tracker"),
		one("parent_domain", "parent_domain"),
		one("threat_actor", "threat_actor"),
	},
}

// Domain booleans compile to tag tokens; the creation/update date expands
// into an OR group over both date keys.
var domainMapping = FieldMapping{
	Category: CategoryDomain,
	Entries: []MappingEntry{
		one("domain_contains", "domain"),
		one("domain_depth", "depth"),
		one("tld", "tld"),
		one("categories_contains", "category"),
		one("positive_detections", "p"),
		one("antivirus_label", "engines"),
		one("popularity_rank", "popularity_rank"),
		one("whois_contains", "whois"),
		one("tags", "tag"),
		one("resolution_ttl", "ttl"),
		one("txt_record_contains", "txt_record"),
		{Field: "creation_update_date_after", Keys: []string{"creation_date", "last_update_date"}},
		one("has_detected_downloaded_files", "detected_downloaded_files"),
		one("has_detected_urls", "detected_urls"),
		one("has_detected_communicating_files", "detected_communicating_files"),
		one("has_detected_files_referring", "detected_referring_files"),
	},
}

// IP booleans compile to minimum-count tokens, not tags; the mapped key is
// the complete token.
var ipMapping = FieldMapping{
	Category: CategoryIP,
	Entries: []MappingEntry{
		one("ip_cidr_range", "ip"),
		one("autonomous_system_number", "asn"),
		one("autonomous_system_owner", "aso"),
		one("country", "country"),
		one("continent", "continent"),
		one("comment", "comment"),
		one("comment_author", "comment_author"),
		one("positive_detections", "p"),
		one("antivirus_label", "engines"),
		one("reputation", "reputation"),
		one("domain_resolutions_count", "domain_resolutions_count"),
		one("detected_communicating_files_count", "detected_communicating_files_count"),
		one("communicating_files_max_detections", "communicating_files_max_detections"),
		one("detected_downloaded_files_count", "detected_downloaded_files_count"),
		one("downloaded_files_max_detections", "downloaded_files_max_detections"),
		one("detected_referring_files_count", "detected_referring_files_count"),
		one("referring_files_max_detections", "referring_files_max_detections"),
		one("detected_urls_count", "detected_urls_count"),
		one("urls_max_detections", "urls_max_detections"),
		one("ssl_issuer", "ssl_issuer"),
		one("ssl_serial", "ssl_serial"),
		one("ssl_subject", "ssl_subject"),
		one("ssl_thumbprint", "ssl_thumbprint"),
		one("whois_contains", "whois"),
		one("last_modification_date", "lm"),
		one("jarm", "jarm"),
		one("ssl_not_before", "ssl_not_before"),
		one("ssl_not_after", "ssl_not_after"),
		one("threat_actor", "threat_actor"),
		one("has_detected_downloaded_files", "detected_downloaded_files_count:1+"),
		one("has_detected_urls", "detected_urls_count:1+"),
		one("has_detected_communicating_files", "detected_communicating_files_count:1+"),
		one("has_detected_files_referring", "detected_referring_files_count:1+"),
	},
}
