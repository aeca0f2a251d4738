package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type BillID string

func NewBillID(id string) BillID { return BillID(id) }
func (b BillID) String() string  { return string(b) }
func (b BillID) IsEmpty() bool   { return string(b) == "" }

type VerificationID string

func NewVerificationID(id string) VerificationID { return VerificationID(id) }
func (v VerificationID) String() string          { return string(v) }
func (v VerificationID) IsEmpty() bool           { return string(v) == "" }

type Email string

func (e Email) String() string { return string(e) }
