package match

// NoticeKind classifies fire-and-forget notifications consumed by the
// presentation layer (toasts, sounds). Notices never carry rule logic.
type NoticeKind string

const (
	NoticeSuspensionOver   NoticeKind = "suspension_over"    // player 2' countdown finished
	NoticeTeamPenaltyOver  NoticeKind = "team_penalty_over"  // team 2' countdown finished
	NoticeBenchBlockOver   NoticeKind = "bench_block_over"   // forced-bench block finished
	NoticeLastMinute       NoticeKind = "last_minute"        // <= 60s left in the half
	NoticeHalfEnd          NoticeKind = "half_end"           // a half reached 30:00
	NoticeMatchEnd         NoticeKind = "match_end"          // second half reached 30:00
	NoticeForcedSub        NoticeKind = "forced_sub"         // pick a player to withdraw
	NoticeForcedSubNobody  NoticeKind = "forced_sub_nobody"  // request raised with no one on field
	NoticeDisqualification NoticeKind = "disqualification"   // entity became disqualified
	NoticeSanction         NoticeKind = "sanction"           // yellow / 2' applied
	NoticeGoal             NoticeKind = "goal"
	NoticeShot             NoticeKind = "shot"
	NoticeUndo             NoticeKind = "undo"
)

// Notice is a single fire-and-forget notification.
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	EntityID string     `json:"entityId,omitempty"`
	Message  string     `json:"message"`
	Seconds  int        `json:"seconds,omitempty"` // remaining/block seconds where relevant
}

// NoticeFunc receives notices emitted by the engine. It is called after
// the engine lock is released, in emission order.
type NoticeFunc func(Notice)
