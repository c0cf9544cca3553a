package model

// BumpInput is the version state of a pull request branch
type BumpInput struct {
	Current Version  // version file on HEAD of the current branch
	Base    Version  // version file on HEAD of the base branch
	Authors []string // authors of commits touching the version file since base
	Title   string
	Body    string
}

// BumpResult is the outcome of BumpVersion
type BumpResult struct {
	Version Version
	Level   BumpLevel // empty when Skipped
	Source  string    // "body" or "title"
	Skipped bool      // a human already advanced the version
}

// BumpVersion computes the next version of a pull request branch. A version
// already advanced past base by a non-bot author is kept as is. Otherwise the
// level comes from a checked marker in the body, falling back to the
// conventional-commit type of the title, and is applied to Base.
func BumpVersion(in BumpInput) BumpResult {
	if HasHumanAuthor(in.Authors) && in.Base.Less(in.Current) {
		return BumpResult{Version: in.Current, Skipped: true}
	}

	level, source := LevelFromBody(in.Body), "body"
	if level == "" {
		level, source = LevelFromTitle(in.Title), "title"
	}

	return BumpResult{
		Version: in.Base.Bump(level).WithLeadingV(in.Current.LeadingV),
		Level:   level,
		Source:  source,
	}
}

// LevelFromBody returns the level of the first checked bump marker, or "" if none
func LevelFromBody(body string) BumpLevel {
	level, ok := FindBumpMarker(body)
	if !ok {
		return ""
	}
	return level
}
