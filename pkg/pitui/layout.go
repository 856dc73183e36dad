package pitui

// Pack lays parts out left to right, joined by divider, starting a new line
// whenever the next part would push the current line past width columns.
// Widths are measured with VisibleWidth, so styled parts pack by what the
// user sees.
//
// The first part on a line is always placed, so a part wider than width gets
// a line of its own; such lines are truncated to width. A width <= 0 means the
// width is unknown, and everything goes on one line.
func Pack(parts []string, width int, divider string) []string {
	if len(parts) == 0 {
		return nil
	}

	var (
		lines   []string
		current = parts[0]
		used    = VisibleWidth(parts[0])
		divW    = VisibleWidth(divider)
	)
	for _, part := range parts[1:] {
		partW := VisibleWidth(part)
		if width > 0 && used+divW+partW > width {
			lines = append(lines, current)
			current, used = part, partW
			continue
		}
		current += divider + part
		used += divW + partW
	}
	lines = append(lines, current)

	if width > 0 {
		for i, line := range lines {
			if VisibleWidth(line) > width {
				lines[i] = Truncate(line, width, "")
			}
		}
	}
	return lines
}
