package kernel

type PositionID string

func NewPositionID(id string) PositionID { return PositionID(id) }
func (p PositionID) String() string      { return string(p) }
func (p PositionID) IsEmpty() bool       { return string(p) == "" }

type CriteriaID string

func NewCriteriaID(id string) CriteriaID { return CriteriaID(id) }
func (c CriteriaID) String() string      { return string(c) }
func (c CriteriaID) IsEmpty() bool       { return string(c) == "" }

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }
