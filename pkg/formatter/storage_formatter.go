// File: pkg/formatter/storage_formatter.go
package formatter

import (
	"fmt"
	"strings"

	"bucketctl/pkg/storage"
)

const dateLayout = "2006-01-02"

type StorageFormatter struct{}

func NewStorageFormatter() *StorageFormatter {
	return &StorageFormatter{}
}

func (f *StorageFormatter) FormatBucketList(buckets []storage.Bucket) string {
	table := NewTable([]string{"BUCKET NAME", "PROVIDER", "LOCATION", "CREATED"})

	for _, bucket := range buckets {
		table.AddRow([]string{
			bucket.Name,
			string(bucket.Provider),
			orNA(bucket.Location),
			formatDate(bucket.CreatedAt.IsZero(), bucket.CreatedAt.Format(dateLayout)),
		})
	}

	return table.String()
}

func (f *StorageFormatter) FormatObjectList(bucketName string, objects []storage.Object) string {
	var sb strings.Builder
	sb.WriteString(FormatSectionTitle("Bucket: " + bucketName))
	sb.WriteString("\n")

	table := NewTable([]string{"KEY", "SIZE", "LAST MODIFIED"})
	for _, obj := range objects {
		table.AddRow([]string{
			obj.Key,
			storage.FormatBytes(obj.Size),
			formatDate(obj.LastModified.IsZero(), obj.LastModified.Format("2006-01-02 15:04:05")),
		})
	}
	sb.WriteString(table.String())
	return sb.String()
}

// One-line listing shown before each menu prompt, e.g. "Bucket List: [alpha, beta]"
func (f *StorageFormatter) FormatNameList(title string, names []string) string {
	return fmt.Sprintf("%s: [%s]", title, strings.Join(names, ", "))
}

func (f *StorageFormatter) FormatEmptyBucket(bucketName string) string {
	return fmt.Sprintf("There are no objects in the %s bucket!", bucketName)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatDate(zero bool, formatted string) string {
	if zero {
		return "N/A"
	}
	return formatted
}
