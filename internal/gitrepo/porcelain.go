package gitrepo

import "strings"

const (
	porcelainRecordSeparatorConstant = "\x00"
	porcelainStatusCodeLength        = 2
	porcelainPathOffsetConstant      = 3
	porcelainUntrackedCodeConstant   = "??"
	porcelainIgnoredCodeConstant     = "!!"
	porcelainRenamedStatusConstant   = 'R'
	porcelainCopiedStatusConstant    = 'C'
)

// ParsePorcelainStatus decodes `git status --porcelain=v1 -z` output.
// Renamed and copied records consume the following original-path field.
// Ignored entries are dropped.
func ParsePorcelainStatus(output string) (WorktreeStatus, error) {
	status := WorktreeStatus{}
	records := strings.Split(output, porcelainRecordSeparatorConstant)

	for recordIndex := 0; recordIndex < len(records); recordIndex++ {
		record := records[recordIndex]
		if len(record) == 0 {
			continue
		}
		if len(record) <= porcelainPathOffsetConstant || record[porcelainStatusCodeLength] != ' ' {
			return WorktreeStatus{}, errMalformedPorcelainRecord
		}

		statusCode := record[:porcelainStatusCodeLength]
		recordPath := record[porcelainPathOffsetConstant:]

		switch statusCode {
		case porcelainUntrackedCodeConstant:
			status.Untracked = append(status.Untracked, recordPath)
		case porcelainIgnoredCodeConstant:
		default:
			status.Modified = append(status.Modified, recordPath)
			if isRenameOrCopy(statusCode) {
				recordIndex++
			}
		}
	}
	return status, nil
}

func isRenameOrCopy(statusCode string) bool {
	for _, statusLetter := range []byte(statusCode) {
		if statusLetter == porcelainRenamedStatusConstant || statusLetter == porcelainCopiedStatusConstant {
			return true
		}
	}
	return false
}
