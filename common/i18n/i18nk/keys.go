package i18nk

type Key string

const (
	Welcome          Key = "welcome"
	JoinRequired     Key = "join_required"
	JoinMissing      Key = "join_missing"
	JoinThanks       Key = "join_thanks"
	ButtonJoinMain   Key = "button_join_main"
	ButtonJoinBackup Key = "button_join_backup"
	ButtonJoined     Key = "button_joined"
	ButtonMovies     Key = "button_movies"
	ButtonWebseries  Key = "button_webseries"
	ButtonHelp       Key = "button_help"
	ButtonBack       Key = "button_back"
	ButtonGetFile    Key = "button_get_file"
	ButtonPrev       Key = "button_prev"
	ButtonNext       Key = "button_next"

	Banned        Key = "banned"
	InvalidLink   Key = "invalid_link"
	FileNotFound  Key = "file_not_found"
	GenericError  Key = "generic_error"
	NotAuthorized Key = "not_authorized"
	UnknownAction Key = "unknown_action"
	Help          Key = "help"
	PrivateHint   Key = "private_hint"

	MenuMoviesTitle    Key = "menu_movies_title"
	MenuWebseriesTitle Key = "menu_webseries_title"
	MenuEmpty          Key = "menu_empty"

	SearchUsage     Key = "search_usage"
	SearchNoResults Key = "search_no_results"
	SearchResults   Key = "search_results"
	SearchExpired   Key = "search_expired"

	LinkUsage        Key = "link_usage"
	LinkReady        Key = "link_ready"
	InvalidMessageID Key = "invalid_message_id"
	NotStorageFile   Key = "not_storage_file"

	PostUsage   Key = "post_usage"
	PostDone    Key = "post_done"
	PostFailed  Key = "post_failed"
	PostCaption Key = "post_caption"

	ForwardRegistered Key = "forward_registered"

	BanUsage Key = "ban_usage"
	BanDone  Key = "ban_done"

	Stats Key = "stats"

	CmdStart  Key = "cmd_start"
	CmdSearch Key = "cmd_search"
	CmdHelp   Key = "cmd_help"
)
