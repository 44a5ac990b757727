package discovery

import (
	"sort"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
// A key with an empty value is emitted without "=".
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		if v == "" {
			result = append(result, k)
			continue
		}
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		key, value, _ := strings.Cut(s, "=")
		if key == "" {
			continue
		}
		txt[key] = value
	}
	return txt
}
