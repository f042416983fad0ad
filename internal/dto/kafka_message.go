package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type UserRegisteredEvent struct {
	UserIdx  int64  `json:"user_idx"`
	Nickname string `json:"nickname"`
}

type GameApprovedEvent struct {
	GameIdx  int64  `json:"game_idx"`
	UserIdx  int64  `json:"user_idx"`
	Title    string `json:"title"`
	TitleKor string `json:"title_kor"`
	TitleEng string `json:"title_eng"`
}
