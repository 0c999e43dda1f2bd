package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open table.
	RpcQuickMatch = "quick_match"

	// RpcVoiceToken is the Nakama RPC id clients call to sign Vivox access tokens.
	RpcVoiceToken = "voice_token"

	// MatchNameTarot is the authoritative match handler name registered with Nakama.
	MatchNameTarot = "tarot_table"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartDeal int64 = 1
	OpBid       int64 = 2
	OpKingCall  int64 = 3
	OpDiscard   int64 = 4
	OpPlayCard  int64 = 5
	OpRestart   int64 = 6

	// Server -> Client events
	OpTableState       int64 = 101
	OpHandDealt        int64 = 102 // send privately
	OpBiddingTurn      int64 = 103
	OpBidRecorded      int64 = 104
	OpBiddingResolved  int64 = 105
	OpAllPassed        int64 = 106
	OpKingCallRequest  int64 = 107
	OpKingCallResolved int64 = 108
	OpDogRequest       int64 = 109 // send privately
	OpDogResolved      int64 = 110
	OpHandUpdated      int64 = 111 // send privately
	OpCardPlayed       int64 = 112
	OpTrickResolved    int64 = 113
	OpTrickReset       int64 = 114
	OpHandFinished     int64 = 115
	OpActionRejected   int64 = 116 // send privately
)
