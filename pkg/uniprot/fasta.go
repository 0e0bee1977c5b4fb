package uniprot

import "strings"

// ParseFASTA splits FASTA text into a map of accession to sequence.
//
// A header line starts with '>'. For UniProt headers ("sp|P01308|INS_HUMAN ...")
// the accession is the second '|' field; otherwise it is the first
// whitespace-delimited token. Sequence lines before the first header have no
// accession and are dropped, as are headers with no sequence lines.
func ParseFASTA(text string) map[string]string {
	var (
		sequences = make(map[string]string)
		current   string
		buf       strings.Builder
	)

	flush := func() {
		if current != "" && buf.Len() > 0 {
			sequences[current] = buf.String()
		}
		buf.Reset()
	}

	// Split rather than scan: unwrapped sequences can exceed any line buffer.
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, ">") {
			flush()
			current = headerAccession(line[1:])
			continue
		}

		buf.WriteString(strings.TrimSpace(line))
	}

	flush()

	return sequences
}

func headerAccession(header string) string {
	if strings.Contains(header, "|") {
		return strings.Split(header, "|")[1]
	}

	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
