package loosejson

import (
	"fmt"
	"io"
)

// DetectDuplicateKeys decodes text and reports every repeated object key.
// The duplicate policy in opt is forced to Warn; the other options apply as
// given. maxIssues < 0 means unlimited, 0 disables detection, and a positive
// limit appends a final truncated issue once exceeded.
func DetectDuplicateKeys(text string, opt DecodeOpt, maxIssues int) (Issues, error) {
	return detectDuplicateKeys([]byte(text), opt, maxIssues)
}

// DetectDuplicateKeysReader is DetectDuplicateKeys over an io.Reader. The
// whole input is read first; MaxBytes bounds the read.
func DetectDuplicateKeysReader(r io.Reader, opt DecodeOpt, maxIssues int) (Issues, error) {
	data, err := readAllLimited(r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	return detectDuplicateKeys(data, opt, maxIssues)
}

func detectDuplicateKeys(data []byte, opt DecodeOpt, maxIssues int) (Issues, error) {
	if maxIssues == 0 {
		return nil, nil
	}
	var (
		iss       Issues
		truncated bool
	)
	next := opt.IssueSink
	opt.Strictness.OnDuplicateKey = Warn
	opt.IssueSink = func(it Issue) {
		if next != nil {
			next(it)
		}
		if maxIssues > 0 && len(iss) >= maxIssues {
			truncated = true
			return
		}
		iss = append(iss, it)
	}
	if _, err := decode(data, opt); err != nil {
		return nil, err
	}
	if truncated {
		iss = append(iss, Issue{
			Path:    "/",
			Code:    CodeTruncated,
			Message: fmt.Sprintf("more than %d duplicate keys; the rest are not reported", maxIssues),
		})
	}
	return iss, nil
}

// readAllLimited reads r to the end, failing with too_large when more than
// limit bytes are available and limit is positive.
func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &DecodeError{
			Code:    CodeTooLarge,
			Message: fmt.Sprintf("input exceeds the %d byte limit", limit),
			Pos:     Position{Line: 1},
			Path:    "/",
		}
	}
	return data, nil
}
