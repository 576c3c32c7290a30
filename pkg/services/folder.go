package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// "No. 12-2021"
	numberedFolderRegex = regexp.MustCompile(`^No\.\s*(\d+)\s*-\s*(\d{4})$`)
	// "Smith Residence-2019"
	namedFolderRegex = regexp.MustCompile(`^(.+?)\s*-\s*(\d{4})$`)

	photoExtensionRegex = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|gif|avif)$`)
)

// FolderInfo is the display metadata derived from a project folder name
type FolderInfo struct {
	ID   string
	Name string
	Year int
}

// ParseFolder infers a project's slug, display name and year from its folder name
func ParseFolder(folder string) FolderInfo {
	folder = strings.TrimSpace(folder)
	info := FolderInfo{ID: Slugify(folder), Name: folder}

	if m := numberedFolderRegex.FindStringSubmatch(folder); m != nil {
		info.Name = "No. " + m[1]
		info.Year, _ = strconv.Atoi(m[2])
		return info
	}
	if m := namedFolderRegex.FindStringSubmatch(folder); m != nil {
		info.Name = m[1]
		info.Year, _ = strconv.Atoi(m[2])
	}
	return info
}

// Slugify lowercases s and collapses every run of non-alphanumerics into a single dash
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// IsPhoto reports whether name has one of the served image extensions
func IsPhoto(name string) bool {
	return photoExtensionRegex.MatchString(name)
}

// naturalLess compares strings treating digit runs as numbers,
// so "photo2" sorts before "photo10".
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		c1, c2 := s1[i], s2[j]
		if isDigit(c1) && isDigit(c2) {
			start1 := i
			for i < len(s1) && isDigit(s1[i]) {
				i++
			}
			start2 := j
			for j < len(s2) && isDigit(s2[j]) {
				j++
			}
			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}
		if c1 != c2 {
			return c1 < c2
		}
		i++
		j++
	}
	return len(s1)-i < len(s2)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
